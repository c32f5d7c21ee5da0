package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Article is the markdown an HTML page is built from.
type Article struct {
	Title        string
	Introduction string
	Body         []string
	Conclusion   string
}

// Options tunes the generated HTML.
type Options struct {
	// InlineStyles rewrites headings into styled paragraphs and flattens lists,
	// for blog editors that strip heading and list tags on paste.
	InlineStyles bool
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown joins the article into one markdown document with the title as the only h1.
func Markdown(a Article) string {
	var sb strings.Builder
	if t := strings.TrimSpace(a.Title); t != "" {
		sb.WriteString("# ")
		sb.WriteString(t)
		sb.WriteString("\n\n")
	}
	blocks := make([]string, 0, len(a.Body)+2)
	blocks = append(blocks, a.Introduction)
	blocks = append(blocks, a.Body...)
	blocks = append(blocks, a.Conclusion)
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		sb.WriteString(b)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String()) + "\n"
}

// HTML converts the article to HTML.
func HTML(a Article, opts Options) (string, error) {
	html, err := mdToHTML(Markdown(a))
	if err != nil {
		return "", err
	}
	if opts.InlineStyles {
		html = convertHeadings(html)
		html = flattenLists(html)
	}
	return html, nil
}

func mdToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var (
	olRe = regexp.MustCompile(`(?s)<ol[^>]*>(.*?)</ol>`)
	ulRe = regexp.MustCompile(`(?s)<ul[^>]*>(.*?)</ul>`)
	liRe = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)
	hRe  = regexp.MustCompile(`(?s)<h([1-6])[^>]*>(.*?)</h[1-6]>`)

	headingSizes = map[string]string{
		"1": "24px",
		"2": "22px",
		"3": "20px",
		"4": "18px",
		"5": "16px",
		"6": "15px",
	}
)

func flattenLists(html string) string {
	html = olRe.ReplaceAllStringFunc(html, func(block string) string {
		items := liRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		for i, item := range items {
			fmt.Fprintf(&b, "<p>%d. %s</p>", i+1, strings.TrimSpace(item[1]))
		}
		return b.String()
	})

	return ulRe.ReplaceAllStringFunc(html, func(block string) string {
		items := liRe.FindAllStringSubmatch(block, -1)
		if len(items) == 0 {
			return block
		}
		var b strings.Builder
		for _, item := range items {
			b.WriteString("<p>• ")
			b.WriteString(strings.TrimSpace(item[1]))
			b.WriteString("</p>")
		}
		return b.String()
	})
}

func convertHeadings(html string) string {
	return hRe.ReplaceAllStringFunc(html, func(block string) string {
		parts := hRe.FindStringSubmatch(block)
		if len(parts) != 3 {
			return block
		}
		size := headingSizes[parts[1]]
		if size == "" {
			size = "18px"
		}
		return fmt.Sprintf(`<p style="font-size:%s;font-weight:700;margin:1em 0 0.6em;">%s</p>`, size, strings.TrimSpace(parts[2]))
	})
}
