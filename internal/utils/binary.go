package utils

import (
	"io"
	"os"
)

// binarySniffLength defines the maximum number of bytes inspected when
// detecting binary content.
const binarySniffLength = 1024

// binaryByteRatioThreshold is the fraction of suspect bytes within the sniff
// window above which content is classified as binary.
const binaryByteRatioThreshold = 0.3

// IsBinary reports whether the provided byte slice appears to contain binary
// data. A NUL byte classifies the content as binary immediately; otherwise
// the ratio of control and high bytes within the sniff window decides.
// Empty content is treated as text.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	window := data
	if len(window) > binarySniffLength {
		window = window[:binarySniffLength]
	}
	suspectCount := 0
	for _, byteValue := range window {
		if byteValue == 0 {
			return true
		}
		if byteValue < 9 || (byteValue >= 128 && byteValue <= 191) {
			suspectCount++
		}
	}
	return float64(suspectCount)/float64(len(window)) >= binaryByteRatioThreshold
}

// ReadLeadingBytes reads up to binarySniffLength bytes from the file at path.
func ReadLeadingBytes(path string) ([]byte, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, binarySniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return nil, readError
	}
	return buffer[:bytesRead], nil
}

// IsFileBinary reads the leading bytes of the file at path and reports
// whether the content appears to be binary. Unreadable files are reported
// as text so they surface through the normal read-error path instead.
func IsFileBinary(path string) bool {
	leadingBytes, readError := ReadLeadingBytes(path)
	if readError != nil {
		return false
	}
	return IsBinary(leadingBytes)
}
