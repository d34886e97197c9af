package storage

// Object key layout inside the bucket.
const (
	imagePrefix     = "images/"
	thumbnailPrefix = "thumbnails/"
	pdfPrefix       = "pdfs/"
)

func ImageKey(filename string) string     { return imagePrefix + filename }
func ThumbnailKey(filename string) string { return thumbnailPrefix + filename }
func PdfKey(filename string) string       { return pdfPrefix + filename }
