package extractor

import (
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	readability "github.com/go-shiori/go-readability"
)

// maxMainContent bounds the Markdown body carried on a record.
const maxMainContent = 15000

// minReadableLength is the minimum TextContent length for readability
// output to be considered valid. Below it the algorithm likely failed to
// locate the main content.
const minReadableLength = 50

// mdConverter is goroutine-safe and reused across extractions. The base
// plugin strips script, style, iframe, noscript, head and form noise;
// commonmark renders standard Markdown; the table plugin keeps tabular
// structure with minimal cell padding.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(
			table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
		),
	),
)

// extractMainContent runs the Mozilla Readability algorithm on the raw
// markup and converts the article body to Markdown. Best-effort: any
// failure yields an empty string, never an error, so a missing main
// content block cannot fail an extraction.
func extractMainContent(rawHTML, finalURL string) string {
	parsedURL, err := nurl.Parse(finalURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Debug("readability extraction failed", "url", finalURL, "error", err)
		return ""
	}
	if len(strings.TrimSpace(article.TextContent)) < minReadableLength {
		return ""
	}

	md, err := mdConverter.ConvertString(article.Content, converter.WithDomain(parsedURL.Host))
	if err != nil {
		slog.Debug("markdown conversion failed", "url", finalURL, "error", err)
		return ""
	}

	return truncate(strings.TrimSpace(md), maxMainContent)
}
