package wordsource

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// contentSelector scopes list extraction to the main page content so that
// navigation menus are not mistaken for spelling lists.
const contentSelector = "main, article, [role=main]"

// ExtractWords pulls the text of a word list out of an HTML page, one entry
// per line. List items inside the main content win; otherwise the readable
// article text is used, and as a last resort the whole body text.
func ExtractWords(page []byte, pageURL *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	if items := listItems(doc.Find(contentSelector).Find("li")); len(items) > 0 {
		return strings.Join(items, "\n"), nil
	}

	article, err := readability.FromReader(bytes.NewReader(page), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent, nil
	}

	// Unreadable page or no article: fall back to any list, then the body text.
	if items := listItems(doc.Find("li")); len(items) > 0 {
		return strings.Join(items, "\n"), nil
	}
	return doc.Find("body").Text(), nil
}

func listItems(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		// Nested lists are reached on their own; keep only the item's direct text.
		item := s.Clone()
		item.Find("ul, ol").Remove()
		if text := strings.Join(strings.Fields(item.Text()), " "); text != "" {
			out = append(out, text)
		}
	})
	return out
}
