package webview

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// toMarkdown converts an extracted article fragment into markdown for glamour.
func toMarkdown(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse article html: %w", err)
	}

	var sb strings.Builder
	writeBlocks(&sb, doc, "")
	return strings.TrimSpace(sb.String()) + "\n", nil
}

// writeBlocks walks n and writes one markdown block per block-level element.
// prefix is prepended to every line (used for block quotes).
func writeBlocks(sb *strings.Builder, n *html.Node, prefix string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := collapse(c.Data); text != "" {
				writeBlock(sb, prefix, text)
			}
			continue
		case html.ElementNode:
		default:
			writeBlocks(sb, c, prefix)
			continue
		}

		switch c.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Iframe, atom.Svg:
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			level := int(c.Data[1] - '0')
			if text := inlineText(c); text != "" {
				writeBlock(sb, prefix, strings.Repeat("#", level)+" "+text)
			}
		case atom.P:
			if text := inlineText(c); text != "" {
				writeBlock(sb, prefix, text)
			}
		case atom.Ul, atom.Ol:
			writeList(sb, c, prefix)
		case atom.Blockquote:
			writeBlocks(sb, c, prefix+"> ")
		case atom.Pre:
			code := textContent(c)
			if strings.TrimSpace(code) != "" {
				writeBlock(sb, prefix, "```\n"+strings.TrimRight(code, "\n")+"\n```")
			}
		case atom.Img:
			if src := attr(c, "src"); src != "" {
				writeBlock(sb, prefix, fmt.Sprintf("![%s](%s)", attr(c, "alt"), src))
			}
		case atom.Hr:
			writeBlock(sb, prefix, "---")
		default:
			writeBlocks(sb, c, prefix)
		}
	}
}

func writeList(sb *strings.Builder, list *html.Node, prefix string) {
	ordered := list.DataAtom == atom.Ol
	index := 0
	var lines []string
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		text := inlineText(li)
		if text == "" {
			continue
		}
		index++
		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", index)
		}
		lines = append(lines, marker+" "+text)
	}
	if len(lines) > 0 {
		writeBlock(sb, prefix, strings.Join(lines, "\n"))
	}
}

// writeBlock separates block from what came before with a blank (prefixed) line.
func writeBlock(sb *strings.Builder, prefix, block string) {
	if sb.Len() > 0 {
		sb.WriteString(strings.TrimRight(prefix, " "))
		sb.WriteString("\n")
	}
	for _, line := range strings.Split(block, "\n") {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// inlineText renders the inline content of n, keeping links and emphasis.
func inlineText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				sb.WriteString(c.Data)
			case c.Type != html.ElementNode:
			case c.DataAtom == atom.Script || c.DataAtom == atom.Style:
			case c.DataAtom == atom.Br:
				sb.WriteString(" ")
			case c.DataAtom == atom.A:
				text := collapse(textContent(c))
				href := attr(c, "href")
				if text == "" {
					continue
				}
				if href == "" || strings.HasPrefix(href, "#") {
					sb.WriteString(text)
				} else {
					fmt.Fprintf(&sb, "[%s](%s)", text, href)
				}
			case c.DataAtom == atom.Strong || c.DataAtom == atom.B:
				if text := collapse(textContent(c)); text != "" {
					sb.WriteString("**" + text + "**")
				}
			case c.DataAtom == atom.Em || c.DataAtom == atom.I:
				if text := collapse(textContent(c)); text != "" {
					sb.WriteString("*" + text + "*")
				}
			case c.DataAtom == atom.Code:
				if text := collapse(textContent(c)); text != "" {
					sb.WriteString("`" + text + "`")
				}
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return collapse(sb.String())
}

// textContent concatenates every text node under n verbatim.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
