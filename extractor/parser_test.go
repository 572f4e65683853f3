package extractor

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const salesPage = `<!DOCTYPE html>
<html>
<head>
<title>Curso Completo de Marketing Digital | Acme</title>
<meta property="og:title" content="Curso Completo de Marketing Digital">
<meta property="og:description" content="Aprenda marketing digital do zero ao avançado.">
<meta property="og:image" content="https://cdn.acme.com.br/capa.jpg">
<meta name="keywords" content="marketing, curso, digital">
<meta name="author" content="Equipe Acme">
<meta name="description" content="O curso mais completo de marketing digital do Brasil, com mais de 200 aulas práticas e suporte dedicado.">
</head>
<body>
<h1>Curso Completo de Marketing Digital</h1>
<div class="price">De R$ 497 por apenas R$ 199,90 à vista</div>
<ul class="beneficios">
	<li>Mais de 200 aulas práticas em vídeo</li>
	<li>Certificado reconhecido no mercado</li>
	<li>Mais de 200 aulas práticas em vídeo</li>
	<li>curto</li>
</ul>
<div class="depoimento">O curso mudou completamente a minha carreira profissional.</div>
<blockquote>Melhor investimento que já fiz, recomendo para todo mundo.</blockquote>
<a href="/checkout" class="botao">Comprar agora com desconto</a>
<img src="/img/banner.png" alt="Banner do curso">
<img src="data:image/png;base64,AAAA" alt="inline">
<img src="https://cdn.acme.com.br/aula.jpg" alt="">
<iframe src="https://www.youtube.com/embed/abc123"></iframe>
<iframe src="https://ads.example.net/frame"></iframe>
<p>Fale conosco: contato@acme.com.br ou (11) 99999-8888.</p>
</body>
</html>`

func TestParse_FullSalesPage(t *testing.T) {
	rec := Parse(salesPage, "https://acme.com.br/curso/")

	if rec.Title != "Curso Completo de Marketing Digital" {
		t.Errorf("Title = %q", rec.Title)
	}
	if !strings.HasPrefix(rec.Description, "O curso mais completo") {
		t.Errorf("Description = %q", rec.Description)
	}
	if rec.Price != "R$ 497" {
		t.Errorf("Price = %q, want first matched amount %q", rec.Price, "R$ 497")
	}

	wantBenefits := []string{
		"Mais de 200 aulas práticas em vídeo",
		"Certificado reconhecido no mercado",
	}
	if len(rec.Benefits) != len(wantBenefits) {
		t.Fatalf("Benefits = %v, want %v", rec.Benefits, wantBenefits)
	}
	for i, b := range wantBenefits {
		if rec.Benefits[i] != b {
			t.Errorf("Benefits[%d] = %q, want %q", i, rec.Benefits[i], b)
		}
	}

	if len(rec.Testimonials) != 2 {
		t.Fatalf("Testimonials = %v, want 2 entries", rec.Testimonials)
	}
	if rec.CTA != "Comprar agora com desconto" {
		t.Errorf("CTA = %q", rec.CTA)
	}

	if len(rec.Images) != 2 {
		t.Fatalf("Images = %v, want 2 (data URI excluded)", rec.Images)
	}
	if rec.Images[0].Src != "https://acme.com.br/img/banner.png" {
		t.Errorf("Images[0].Src = %q, want resolved absolute URL", rec.Images[0].Src)
	}

	if len(rec.Videos) != 1 || !strings.Contains(rec.Videos[0], "youtube.com") {
		t.Errorf("Videos = %v, want only the YouTube embed", rec.Videos)
	}

	if rec.Contact.Email != "contato@acme.com.br" {
		t.Errorf("Contact.Email = %q", rec.Contact.Email)
	}
	if rec.Contact.Phone != "(11) 99999-8888" {
		t.Errorf("Contact.Phone = %q", rec.Contact.Phone)
	}

	if rec.Metadata.OGTitle != "Curso Completo de Marketing Digital" {
		t.Errorf("Metadata.OGTitle = %q", rec.Metadata.OGTitle)
	}
	if rec.Metadata.OGImage != "https://cdn.acme.com.br/capa.jpg" {
		t.Errorf("Metadata.OGImage = %q", rec.Metadata.OGImage)
	}
	if rec.Metadata.Keywords != "marketing, curso, digital" {
		t.Errorf("Metadata.Keywords = %q", rec.Metadata.Keywords)
	}
	if rec.Metadata.Author != "Equipe Acme" {
		t.Errorf("Metadata.Author = %q", rec.Metadata.Author)
	}
	if rec.ExtractionMethod != "" {
		t.Errorf("ExtractionMethod = %q, parser must leave it unset", rec.ExtractionMethod)
	}
}

func TestParse_TitleFromOGMeta(t *testing.T) {
	html := `<html><head><meta property="og:title" content="Acme Pro"></head><body></body></html>`
	rec := Parse(html, "https://example.com")

	if rec.Title != "Acme Pro" {
		t.Errorf("Title = %q, want %q", rec.Title, "Acme Pro")
	}
}

func TestParse_TitleSkipsErrorHeading(t *testing.T) {
	html := `<html><head><meta property="og:title" content="Página Real"></head>
<body><h1>Error 404 Not Found</h1></body></html>`
	rec := Parse(html, "https://example.com")

	if rec.Title != "Página Real" {
		t.Errorf("Title = %q, want og:title when heading is an error page", rec.Title)
	}
}

func TestParse_TitleRejectsShortHeading(t *testing.T) {
	html := `<html><head><title>Loja Virtual de Eletrônicos</title></head><body><h1>Oi</h1></body></html>`
	rec := Parse(html, "https://example.com")

	if rec.Title != "Loja Virtual de Eletrônicos" {
		t.Errorf("Title = %q, want document title when heading is too short", rec.Title)
	}
}

func TestParse_PriceExactSubstring(t *testing.T) {
	html := `<html><body><span class="price">Preço promocional: R$ 199,90 (frete grátis)</span></body></html>`
	rec := Parse(html, "https://example.com")

	if rec.Price != "R$ 199,90" {
		t.Errorf("Price = %q, want %q (matched substring only)", rec.Price, "R$ 199,90")
	}
}

func TestParse_PriceUSD(t *testing.T) {
	html := `<html><body><div class="price">Only $49.90 today</div></body></html>`
	rec := Parse(html, "https://example.com")

	if rec.Price != "$49.90" && rec.Price != "$ 49.90" {
		t.Errorf("Price = %q, want USD amount", rec.Price)
	}
}

func TestParse_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("a", 600)
	html := `<html><head><meta name="description" content="` + long + `"></head><body></body></html>`
	rec := Parse(html, "https://example.com")

	if len(rec.Description) != 500 {
		t.Errorf("len(Description) = %d, want 500", len(rec.Description))
	}
}

func TestParse_DescriptionTruncatedOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("✓", 200) // 600 bytes, cap falls mid-rune
	html := `<html><head><meta name="description" content="` + long + `"></head><body></body></html>`
	rec := Parse(html, "https://example.com")

	if !utf8.ValidString(rec.Description) {
		t.Fatalf("Description is not valid UTF-8: %q", rec.Description)
	}
	if len(rec.Description) != 498 {
		t.Errorf("len(Description) = %d, want 498 (cut back to the rune start)", len(rec.Description))
	}
}

func TestParse_DescriptionSkipsCookieParagraph(t *testing.T) {
	html := `<html><body>
<p>Este site usa cookies para melhorar a sua experiência de navegação no nosso portal.</p>
<p>Um produto desenvolvido para facilitar o dia a dia de quem trabalha com vendas online.</p>
</body></html>`
	rec := Parse(html, "https://example.com")

	if !strings.HasPrefix(rec.Description, "Um produto desenvolvido") {
		t.Errorf("Description = %q, want the non-cookie paragraph", rec.Description)
	}
}

func TestParse_BenefitsFromCheckmarkList(t *testing.T) {
	html := `<html><body><ul>
<li>✓ Acesso vitalício a todas as aulas do curso</li>
<li>✔ Suporte direto com os instrutores</li>
<li>Item comum de navegação sem marcador</li>
</ul></body></html>`
	rec := Parse(html, "https://example.com")

	if len(rec.Benefits) != 2 {
		t.Fatalf("Benefits = %v, want only checkmark-prefixed items", rec.Benefits)
	}
}

func TestParse_BenefitsCap(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><ul class="beneficios">`)
	for i := 0; i < 12; i++ {
		b.WriteString(`<li>Benefício exclusivo de número `)
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></body></html>`)

	rec := Parse(b.String(), "https://example.com")
	if len(rec.Benefits) != 8 {
		t.Errorf("len(Benefits) = %d, want cap 8", len(rec.Benefits))
	}
}

func TestParse_ImagesCap(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body>`)
	for i := 0; i < 15; i++ {
		b.WriteString(`<img src="/img/foto`)
		b.WriteString(strings.Repeat("a", i+1))
		b.WriteString(`.jpg">`)
	}
	b.WriteString(`</body></html>`)

	rec := Parse(b.String(), "https://example.com")
	if len(rec.Images) != 10 {
		t.Errorf("len(Images) = %d, want cap 10", len(rec.Images))
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	rec := Parse("", "https://example.com")

	if rec.Title != "" || rec.Price != "" {
		t.Errorf("empty document produced Title=%q Price=%q", rec.Title, rec.Price)
	}
	if rec.Benefits == nil || rec.Images == nil || rec.Videos == nil || rec.Testimonials == nil {
		t.Error("sequence fields must be empty, not nil")
	}
}
