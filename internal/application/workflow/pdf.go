package workflow

import "context"

// PrintoutUseCase genera la nota imprimible de un documento.
type PrintoutUseCase struct {
	docs      *UseCase
	generator PrintoutGenerator
}

// NewPrintoutUseCase construye el caso de uso.
func NewPrintoutUseCase(docs *UseCase, generator PrintoutGenerator) *PrintoutUseCase {
	return &PrintoutUseCase{docs: docs, generator: generator}
}

// Generate devuelve los bytes del PDF para un documento del tipo indicado.
func (uc *PrintoutUseCase) Generate(ctx context.Context, kind, id string) ([]byte, error) {
	doc, err := uc.docs.loadDocument(kind, id)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateDocumentPDF(ctx, doc)
}
