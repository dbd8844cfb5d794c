package output

import (
	"encoding/xml"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	xmlIndentPrefix = ""
	xmlIndentSpacer = "  "
)

type xmlSummary struct {
	TotalFiles int    `xml:"totalFiles"`
	TotalSize  string `xml:"totalSize"`
	Tokens     int    `xml:"tokens,omitempty"`
	TokenModel string `xml:"model,omitempty"`
}

type xmlFile struct {
	Path    string `xml:"path,attr"`
	Content string `xml:",chardata"`
}

type xmlProject struct {
	XMLName xml.Name   `xml:"project"`
	Name    string     `xml:"name,attr"`
	Summary xmlSummary `xml:"summary"`
	Tree    string     `xml:"tree"`
	Files   []xmlFile  `xml:"files>file"`
}

// RenderXML assembles the final XML artifact containing the summary, the
// rendered tree, and each gathered file as an escaped text element.
func RenderXML(summary Summary, renderedTree string, gatheredFiles []types.FileContent) (string, error) {
	document := xmlProject{
		Name: summary.ProjectName,
		Summary: xmlSummary{
			TotalFiles: summary.TotalFiles,
			TotalSize:  utils.FormatFileSize(summary.TotalSize),
			Tokens:     summary.Tokens,
			TokenModel: summary.TokenModel,
		},
		Tree: renderedTree,
	}
	for _, gatheredFile := range gatheredFiles {
		document.Files = append(document.Files, xmlFile{Path: gatheredFile.Path, Content: gatheredFile.Content})
	}
	encoded, xmlMarshalError := xml.MarshalIndent(document, xmlIndentPrefix, xmlIndentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xml.Header + string(encoded) + "\n", nil
}
