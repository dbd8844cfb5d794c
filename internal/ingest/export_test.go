package ingest

// SetLimits overrides the file-count and total-size ceilings. Zero keeps
// the package default for that ceiling.
func (walker *Walker) SetLimits(fileLimit int, totalSizeLimit int64) {
	walker.fileLimit = fileLimit
	walker.totalSizeLimit = totalSizeLimit
}
