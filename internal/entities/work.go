package entities

// WorkItem is one file to be thumbnailed: where to read the source image
// and where to write the resized JPEG. DstPath always ends in ".jpg".
type WorkItem struct {
	SrcPath string
	DstPath string
}
