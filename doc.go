// Package framy puts images into a square frame of uniform color.
//
// Each image is decoded, turned upright according to its EXIF orientation,
// resized so that its longer edge fits the canvas minus padding, and centered
// on a canvas filled with the border color. The canvas is encoded as PNG,
// JPEG, GIF, WEBP or TIFF next to the other framed outputs.
package framy
