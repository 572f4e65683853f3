package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/salesloop/pagelens/models"
)

// Completer produces a reply from a system and user prompt. *llm.Client
// satisfies it; tests substitute their own.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// SalesResponder answers visitor messages about an extracted page. When
// an LLM client is configured it drafts the reply; otherwise, or on LLM
// failure, it falls back to intent-keyed templates so the endpoint never
// errors out on a provider outage.
type SalesResponder struct {
	completer Completer
}

// NewSalesResponder creates a responder. completer may be nil, in which
// case only templates are used.
func NewSalesResponder(completer Completer) *SalesResponder {
	return &SalesResponder{completer: completer}
}

// Respond builds a reply to message, grounded on the session's page
// record when one is attached. It works on a Snapshot so concurrent
// requests on the same session never read state mid-mutation.
func (r *SalesResponder) Respond(ctx context.Context, snap Snapshot, message string) string {
	if r.completer != nil {
		reply, err := r.completer.Complete(ctx, buildSystemPrompt(snap), message)
		if err == nil && reply != "" {
			return reply
		}
		slog.Warn("LLM reply failed, using template response", "error", err)
	}
	return templateResponse(snap.Record, message)
}

// buildSystemPrompt assembles the sales-assistant persona plus whatever
// page facts the session carries.
func buildSystemPrompt(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("Você é um assistente de vendas simpático e persuasivo. ")
	b.WriteString("Responda em português do Brasil, de forma breve e natural, ")
	b.WriteString("sempre conduzindo a conversa em direção à compra.\n")

	rec := snap.Record
	if rec != nil {
		b.WriteString("\nInformações da página:\n")
		if rec.Title != "" {
			fmt.Fprintf(&b, "Produto: %s\n", rec.Title)
		}
		if rec.Description != "" {
			fmt.Fprintf(&b, "Descrição: %s\n", rec.Description)
		}
		if rec.Price != "" {
			fmt.Fprintf(&b, "Preço: %s\n", rec.Price)
		}
		for _, ben := range rec.Benefits {
			fmt.Fprintf(&b, "Benefício: %s\n", ben)
		}
		if rec.CTA != "" {
			fmt.Fprintf(&b, "Chamada para ação: %s\n", rec.CTA)
		}
	}

	for _, ex := range snap.History {
		fmt.Fprintf(&b, "\nCliente: %s\nAssistente: %s", ex.User, ex.Bot)
	}
	return b.String()
}

// intent keywords, lowercase.
var (
	greetingWords = []string{"olá", "ola", "oi", "bom dia", "boa tarde", "boa noite", "hello", "hi"}
	priceWords    = []string{"preço", "preco", "valor", "custa", "custo", "caro", "barato", "price"}
	buyWords      = []string{"comprar", "compra", "adquirir", "quero", "garantir", "assinar", "buy"}
)

// templateResponse is the deterministic fallback used without an LLM.
func templateResponse(rec *models.ContentRecord, message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, greetingWords):
		if rec != nil && rec.Title != "" {
			return fmt.Sprintf("Olá! É um prazer falar com você! Posso te contar tudo sobre %s. Como posso ajudar? 😊", rec.Title)
		}
		return "Olá! É um prazer falar com você! Como posso te ajudar hoje? 😊"

	case containsAny(lower, priceWords):
		if rec != nil && rec.Price != "" {
			return fmt.Sprintf("O investimento é de %s. Considerando tudo que está incluído, é uma excelente oportunidade! Quer que eu detalhe os benefícios?", rec.Price)
		}
		return "Entendo sua preocupação com o investimento. Vamos pensar no valor que essa solução entrega? Posso te passar todos os detalhes!"

	case containsAny(lower, buyWords):
		if rec != nil && rec.CTA != "" {
			return fmt.Sprintf("Ótima decisão! %s — é só seguir pelo botão na página. Qualquer dúvida no processo, estou aqui!", rec.CTA)
		}
		return "Ótima decisão! É só seguir pela página para concluir. Qualquer dúvida no processo, estou aqui! 🚀"

	default:
		if rec != nil && len(rec.Benefits) > 0 {
			return fmt.Sprintf("Excelente pergunta! Um dos grandes diferenciais é: %s. Quer saber mais algum detalhe?", rec.Benefits[0])
		}
		return "Que interessante! Conte-me mais para que eu possa te ajudar da melhor forma possível!"
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
