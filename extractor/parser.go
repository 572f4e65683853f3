package extractor

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/salesloop/pagelens/models"
)

const (
	maxDescription  = 500
	maxBenefits     = 8
	maxTestimonials = 5
	maxImages       = 10
	maxVideos       = 5
)

// Parse derives a ContentRecord from rendered markup. Pure over its
// inputs, no I/O. finalURL is the post-redirect document URL and anchors
// relative media sources; ExtractionMethod is left unset for the caller.
func Parse(rawHTML, finalURL string) *models.ContentRecord {
	rec := &models.ContentRecord{
		Benefits:     []string{},
		Testimonials: []string{},
		Images:       []models.Image{},
		Videos:       []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rec
	}

	base, baseErr := url.Parse(finalURL)

	rec.Title = firstMatch(doc, titleMatchers, func(s string) bool {
		return len(s) > 5 && !strings.Contains(strings.ToLower(s), "error")
	})
	rec.Description = truncate(firstMatch(doc, descriptionMatchers, func(s string) bool {
		return len(s) > 50
	}), maxDescription)
	rec.Price = extractPrice(doc)
	rec.Benefits = collectTexts(doc, benefitGroups, 10, 200, maxBenefits)
	rec.Testimonials = collectTexts(doc, testimonialGroups, 20, 300, maxTestimonials)
	rec.CTA = extractCTA(doc)

	if baseErr == nil {
		rec.Images = extractImages(doc, base)
		rec.Videos = extractVideos(doc, base)
	}

	rec.Contact = models.Contact{
		Email: emailRe.FindString(rawHTML),
		Phone: phoneRe.FindString(rawHTML),
	}
	rec.Metadata = models.Metadata{
		OGTitle:       metaContent(doc, metaOGTitle),
		OGDescription: metaContent(doc, metaOGDesc),
		OGImage:       metaContent(doc, metaOGImage),
		Keywords:      metaContent(doc, metaKeywords),
		Author:        metaContent(doc, metaAuthor),
	}
	rec.MainContent = extractMainContent(rawHTML, finalURL)

	return rec
}

// firstMatch walks the matcher cascade and returns the first candidate
// text that passes accept. Matchers after the winning one never run.
func firstMatch(doc *goquery.Document, matchers []textMatcher, accept func(string) bool) string {
	for _, m := range matchers {
		var found string
		doc.FindMatcher(m.sel).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			var text string
			if m.attr != "" {
				text, _ = sel.Attr(m.attr)
			} else {
				text = sel.Text()
			}
			text = strings.TrimSpace(text)
			if text == "" || !accept(text) {
				return true
			}
			lower := strings.ToLower(text)
			for _, r := range m.reject {
				if strings.Contains(lower, r) {
					return true
				}
			}
			found = text
			return false
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// extractPrice returns the first priceRe match across the price
// selectors, selector order first and document order within each.
func extractPrice(doc *goquery.Document) string {
	var price string
	for _, sel := range priceSelectors {
		doc.FindMatcher(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := priceRe.FindString(s.Text()); m != "" {
				price = m
				return false
			}
			return true
		})
		if price != "" {
			break
		}
	}
	return price
}

// collectTexts accumulates trimmed texts within [minLen, maxLen] across
// the selector groups, skipping exact duplicates, until limit is reached.
func collectTexts(doc *goquery.Document, groups []collectGroup, minLen, maxLen, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)

	for _, g := range groups {
		doc.FindMatcher(g.sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if g.symbolPrefix && !hasAffirmativePrefix(text) {
				return true
			}
			if len(text) < minLen || len(text) > maxLen {
				return true
			}
			if _, dup := seen[text]; dup {
				return true
			}
			seen[text] = struct{}{}
			out = append(out, text)
			return len(out) < limit
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

func hasAffirmativePrefix(s string) bool {
	for _, p := range affirmativePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// extractCTA prefers links and buttons labeled with a purchase verb,
// then falls back to primary-action classes. Labels must be 4 to 99
// characters.
func extractCTA(doc *goquery.Document) string {
	var cta string
	doc.FindMatcher(ctaCandidates).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !ctaLengthOK(text) || !hasCTAVerb(text) {
			return true
		}
		cta = text
		return false
	})
	if cta != "" {
		return cta
	}
	doc.FindMatcher(ctaFallback).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !ctaLengthOK(text) {
			return true
		}
		cta = text
		return false
	})
	return cta
}

func ctaLengthOK(s string) bool { return len(s) >= 4 && len(s) < 100 }

func hasCTAVerb(s string) bool {
	lower := strings.ToLower(s)
	for _, v := range ctaVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// extractImages returns document-order images with absolute sources.
// Inline data URIs are excluded.
func extractImages(doc *goquery.Document, base *url.URL) []models.Image {
	images := make([]models.Image, 0, maxImages)
	doc.FindMatcher(imageSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		abs := resolveURL(base, src)
		if abs == "" {
			return true
		}
		alt, _ := s.Attr("alt")
		images = append(images, models.Image{Src: abs, Alt: strings.TrimSpace(alt)})
		return len(images) < maxImages
	})
	return images
}

// extractVideos collects native <video> sources plus YouTube and Vimeo
// iframe embeds.
func extractVideos(doc *goquery.Document, base *url.URL) []string {
	videos := make([]string, 0, maxVideos)
	seen := make(map[string]struct{}, maxVideos)

	add := func(src string) bool {
		abs := resolveURL(base, src)
		if abs == "" {
			return true
		}
		if _, dup := seen[abs]; dup {
			return true
		}
		seen[abs] = struct{}{}
		videos = append(videos, abs)
		return len(videos) < maxVideos
	}

	doc.FindMatcher(videoSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if src = strings.TrimSpace(src); src == "" {
			return true
		}
		return add(src)
	})
	if len(videos) >= maxVideos {
		return videos
	}
	doc.FindMatcher(iframeSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || !isVideoHost(src) {
			return true
		}
		return add(src)
	})
	return videos
}

func isVideoHost(src string) bool {
	lower := strings.ToLower(src)
	for _, h := range videoHosts {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

func metaContent(doc *goquery.Document, sel cascadia.Selector) string {
	content, _ := doc.FindMatcher(sel).First().Attr("content")
	return strings.TrimSpace(content)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
