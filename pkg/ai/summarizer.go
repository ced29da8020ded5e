package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable wraps any failure of the external text-generation
// service. Callers surface it to the user; the action is retriable and
// no partial state is persisted on failure.
var ErrUnavailable = errors.New("report generation service unavailable")

// Summarizer consolidates a raw installer report (JSON) into
// human-readable prose. The implementation is an opaque external
// collaborator; the core depends only on this contract and on the fact
// that it may fail.
type Summarizer interface {
	Summarize(ctx context.Context, installerReportJSON, protocolNumber string) (string, error)
}

// buildPrompt assembles the generation prompt. The report payload is
// passed through verbatim; the model does the consolidation.
func buildPrompt(installerReportJSON, protocolNumber string) string {
	return fmt.Sprintf(`Você é um engenheiro responsável por laudos técnicos de instalações de energia solar fotovoltaica.

Abaixo está o relatório de campo preenchido pelo instalador, em JSON, referente ao protocolo %s junto à concessionária.

Converta-o em um relatório técnico final em prosa, em português, organizado em seções (Equipamentos Instalados, Medições Elétricas, Strings, Cabeamento e Disjuntores, Observações). Não invente medições: use apenas os valores presentes no JSON e aponte campos ausentes como "não informado".

Relatório do instalador:
%s`, protocolNumber, installerReportJSON)
}
