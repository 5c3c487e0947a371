// Package extraction provides one adapter per applicant document kind. Each
// adapter turns a file into a RawExtraction; an adapter failure becomes the
// extraction's Error field, never a failed run.
package extraction

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mansoor/social-support-agent/internal/llm"
	"github.com/mansoor/social-support-agent/internal/types"
)

// DocumentSet names the submitted document files for one applicant. Empty
// paths mean the applicant did not submit that document.
type DocumentSet struct {
	Identity          string
	BankStatement     string
	CreditReport      string
	AssetsLiabilities string
}

// Paths returns the non-empty document paths keyed by source kind.
func (d DocumentSet) Paths() map[types.SourceKind]string {
	paths := make(map[types.SourceKind]string)
	if d.Identity != "" {
		paths[types.SourceIdentity] = d.Identity
	}
	if d.BankStatement != "" {
		paths[types.SourceBankStatement] = d.BankStatement
	}
	if d.CreditReport != "" {
		paths[types.SourceCreditReport] = d.CreditReport
	}
	if d.AssetsLiabilities != "" {
		paths[types.SourceAssetsLiabilities] = d.AssetsLiabilities
	}
	return paths
}

// Extractor extracts one document kind. Extract never returns a Go error:
// failures are reported inside the RawExtraction so a bad document degrades
// the run instead of aborting it.
type Extractor interface {
	Kind() types.SourceKind
	Extract(ctx context.Context, path string) types.RawExtraction
}

// Processor fans document extraction out over the per-kind adapters.
type Processor struct {
	extractors map[types.SourceKind]Extractor
}

// NewProcessor wires the four document adapters. The LLM client is shared by
// the identity-card and credit-report adapters; it may be nil, in which case
// those two document kinds extract as errored.
func NewProcessor(client llm.Client) *Processor {
	return &Processor{
		extractors: map[types.SourceKind]Extractor{
			types.SourceIdentity:          &IdentityExtractor{LLM: client},
			types.SourceBankStatement:     &BankStatementExtractor{},
			types.SourceCreditReport:      &CreditReportExtractor{LLM: client},
			types.SourceAssetsLiabilities: &AssetsLiabilitiesExtractor{},
		},
	}
}

// ExtractBundle extracts all submitted documents concurrently. The four
// documents are independent, so the fan-out cannot reorder anything
// observable; the resulting bundle is keyed by source kind.
func (p *Processor) ExtractBundle(ctx context.Context, docs DocumentSet) types.RawExtractionBundle {
	bundle := make(types.RawExtractionBundle)
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for kind, path := range docs.Paths() {
		extractor, ok := p.extractors[kind]
		if !ok {
			continue
		}
		g.Go(func() error {
			raw := extractor.Extract(gCtx, path)
			mu.Lock()
			bundle[kind] = raw
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // adapters report failures in-band

	return bundle
}
