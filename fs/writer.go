// Package fs writes articles to files under a directory.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/readerize"
	"gopkg.in/yaml.v3"
)

// Format is an article file format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".html"
}

// pageExts are server-side page extensions replaced by the output format's.
var pageExts = map[string]bool{
	".htm": true, ".html": true, ".shtml": true, ".php": true, ".asp": true, ".aspx": true,
}

// URLToPath converts an article URL to a relative file path under a
// directory named after the host.
// Example: https://example.com/news/flood → example.com/news/flood.html
func URLToPath(rawURL string, format Format) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", readerize.Errorf(readerize.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", readerize.Errorf(readerize.EINVALID, "url %q has no host", rawURL)
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	path := strings.TrimPrefix(u.Path, "/")

	// Root and trailing slash become index files in that directory.
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}
	if pageExts[strings.ToLower(filepath.Ext(path))] {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}

	return filepath.Join(host, filepath.FromSlash(path)) + format.Ext(), nil
}

// frontMatter is the YAML header written before each article.
type frontMatter struct {
	Source  string   `yaml:"source"`
	Title   string   `yaml:"title"`
	Pages   []string `yaml:"pages,omitempty"`
	Fetched string   `yaml:"fetched"`
}

// FormatArticle formats an article body with YAML front matter.
func FormatArticle(article *readerize.Article, body string) (string, error) {
	fm := frontMatter{
		Source:  article.URL,
		Title:   article.Title,
		Fetched: article.FetchedAt.UTC().Format(time.DateOnly),
	}
	if len(article.Pages) > 1 {
		fm.Pages = article.Pages
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure Writer implements readerize.ArticleWriter at compile time.
var _ readerize.ArticleWriter = (*Writer)(nil)

// Writer writes articles as HTML or Markdown files to a directory.
type Writer struct {
	baseDir   string
	format    Format
	converter readerize.Converter
}

// NewWriter creates a Writer that writes HTML files under baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, format: FormatHTML}
}

// NewMarkdownWriter creates a Writer that converts articles with conv and
// writes Markdown files under baseDir.
func NewMarkdownWriter(baseDir string, conv readerize.Converter) *Writer {
	return &Writer{baseDir: baseDir, format: FormatMarkdown, converter: conv}
}

// WriteArticle writes an article to disk and returns the file path. The
// file is written to a temporary name and renamed into place, so readers
// never see a partial article.
func (w *Writer) WriteArticle(ctx context.Context, article *readerize.Article) (string, error) {
	if err := article.Validate(); err != nil {
		return "", err
	}

	relPath, err := URLToPath(article.URL, w.format)
	if err != nil {
		return "", err
	}

	body := article.ContentHTML
	if w.format == FormatMarkdown {
		body, err = w.converter.Convert(article.ContentHTML)
		if err != nil {
			return "", err
		}
	}

	content, err := FormatArticle(article, body)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		os.Remove(tmp)
		return "", err
	}

	return fullPath, nil
}
