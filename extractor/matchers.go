package extractor

import (
	"regexp"

	"github.com/andybalholm/cascadia"
)

// textMatcher is one step of an ordered selector cascade. Selectors are
// compiled once at package load; Parse only walks pre-built matchers.
type textMatcher struct {
	sel cascadia.Selector

	// attr reads an attribute instead of the element text when set.
	attr string

	// reject disqualifies candidates containing any of these lowercase
	// substrings.
	reject []string
}

// titleMatchers resolve the page title, most specific first. Later steps
// are not attempted once one yields an acceptable candidate.
var titleMatchers = []textMatcher{
	{sel: cascadia.MustCompile("h1"), reject: []string{"error"}},
	{sel: cascadia.MustCompile(".product-title, .page-title, .entry-title, .post-title, .titulo")},
	{sel: cascadia.MustCompile(`[class*="title"]`), reject: []string{"error"}},
	{sel: cascadia.MustCompile(`meta[property="og:title"]`), attr: "content"},
	{sel: cascadia.MustCompile(`meta[name="twitter:title"]`), attr: "content"},
	{sel: cascadia.MustCompile("title")},
}

// descriptionMatchers resolve the page description. Candidates shorter
// than 50 chars are skipped; the winner is truncated to 500.
var descriptionMatchers = []textMatcher{
	{sel: cascadia.MustCompile(".product-description p, .descricao p, .description p")},
	{sel: cascadia.MustCompile(".description, .descricao, .summary, .resumo, [class*=\"description\"]")},
	{sel: cascadia.MustCompile(`meta[name="description"]`), attr: "content"},
	{sel: cascadia.MustCompile(`meta[property="og:description"]`), attr: "content"},
	{sel: cascadia.MustCompile("p"), reject: []string{"cookie", "política"}},
}

// priceSelectors are scanned in order; within each, elements in document
// order. The first priceRe match ends the scan.
var priceSelectors = []cascadia.Selector{
	cascadia.MustCompile(".price"),
	cascadia.MustCompile(".preco, .valor"),
	cascadia.MustCompile(`[itemprop="price"]`),
	cascadia.MustCompile(`[class*="price"], [class*="valor"]`),
}

// priceRe recognizes Brazilian Real amounts (grouped thousands, comma
// decimals) and USD amounts. The matched substring is the price field,
// not the full element text.
var priceRe = regexp.MustCompile(`R\$\s?\d{1,3}(?:\.\d{3})*(?:,\d{2})?|(?:USD|US\$|\$)\s?\d+(?:[.,]\d{2})?`)

// collectGroup is one step of the benefits/testimonials cascade. Groups
// run in order until the field's cap is reached.
type collectGroup struct {
	sel cascadia.Selector

	// symbolPrefix restricts the group to texts starting with an
	// affirmative symbol (checkmark bullet lists).
	symbolPrefix bool
}

var benefitGroups = []collectGroup{
	{sel: cascadia.MustCompile(".benefits li, .beneficios li, .vantagens li, .benefit, .beneficio, .vantagem")},
	{sel: cascadia.MustCompile("li"), symbolPrefix: true},
	{sel: cascadia.MustCompile(`[class*="benefit"], [class*="vantagem"], [class*="feature"] li`)},
}

var testimonialGroups = []collectGroup{
	{sel: cascadia.MustCompile(".testimonial, .depoimento, .review-text, [class*=\"testimonial\"], [class*=\"depoimento\"]")},
	{sel: cascadia.MustCompile("blockquote")},
}

// affirmativePrefixes are the symbols that mark a list item as a benefit
// bullet.
var affirmativePrefixes = []string{"✓", "✔", "✅", "☑"}

// ctaCandidates are links and buttons whose text is tested against
// ctaVerbs; ctaFallback covers primary-action classes with no purchase
// verb in the label.
var (
	ctaCandidates = cascadia.MustCompile("a, button")
	ctaFallback   = cascadia.MustCompile(`.cta, .btn-primary, .button-primary, [class*="cta"]`)
)

// ctaVerbs are lowercase purchase verbs, pt-BR first.
var ctaVerbs = []string{
	"comprar", "compre", "adquirir", "adquira", "quero",
	"garantir", "garanta", "assinar", "assine", "buy",
}

var (
	imageSel     = cascadia.MustCompile("img[src]")
	videoSel     = cascadia.MustCompile("video[src], video source[src]")
	iframeSel    = cascadia.MustCompile("iframe[src]")
	metaOGTitle  = cascadia.MustCompile(`meta[property="og:title"]`)
	metaOGDesc   = cascadia.MustCompile(`meta[property="og:description"]`)
	metaOGImage  = cascadia.MustCompile(`meta[property="og:image"]`)
	metaKeywords = cascadia.MustCompile(`meta[name="keywords"]`)
	metaAuthor   = cascadia.MustCompile(`meta[name="author"]`)
)

// Contact patterns run against the raw markup, not the DOM, so addresses
// in scripts or JSON-LD blocks still count.
var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\(?\d{2}\)?\s?\d{4,5}-?\d{4}`)
)

// videoHosts are the embed platforms accepted from iframes.
var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}
