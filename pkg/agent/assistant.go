// Package agent coordinates one documentation request end to end: generate,
// assemble, write, record.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/nareshroyalc/Docify/pkg/docs"
	"github.com/nareshroyalc/Docify/pkg/events"
	"github.com/nareshroyalc/Docify/pkg/history"
	"github.com/nareshroyalc/Docify/pkg/llm"
	"github.com/nareshroyalc/Docify/pkg/utils"
	"github.com/nareshroyalc/Docify/pkg/worklog"
)

// DocumentSink is the remote document API the assistant writes through.
type DocumentSink interface {
	GetDocument(ctx context.Context, docID string) (*docs.Document, error)
	BatchUpdate(ctx context.Context, docID string, requests []docs.Request) error
	ServiceAccountEmail() string
}

// Assistant holds the wired collaborators for documentation requests. It is
// constructed once at process start and passed to whichever surface (CLI or
// HTTP) handles requests.
type Assistant struct {
	generator *llm.Generator
	sink      DocumentSink
	store     *history.Store
	bus       *events.Bus
	logger    *utils.Logger

	// writeMu serializes writes so two requests cannot compute insertion
	// offsets from the same stale document state.
	writeMu sync.Mutex
}

// New wires an assistant. The store and bus may be nil; history recording
// and event publishing are then skipped.
func New(generator *llm.Generator, sink DocumentSink, store *history.Store, bus *events.Bus, logger *utils.Logger) *Assistant {
	return &Assistant{
		generator: generator,
		sink:      sink,
		store:     store,
		bus:       bus,
		logger:    logger,
	}
}

// ServiceAccountEmail exposes the sink's account for share-the-doc hints.
func (a *Assistant) ServiceAccountEmail() string {
	return a.sink.ServiceAccountEmail()
}

// Outcome is the result of one completed documentation request.
type Outcome struct {
	Entry     *worklog.StructuredEntry
	Metrics   *worklog.GenerationMetrics
	Timestamp string
	DocID     string
	DocURL    string
}

// Document generates an entry for the request and writes it to the given
// document. With includeMetrics false the metrics footer is left out of the
// document; the metrics still come back in the outcome.
func (a *Assistant) Document(ctx context.Context, req llm.Request, docID string, includeMetrics bool) (*Outcome, error) {
	if docID == "" {
		return nil, fmt.Errorf("no document configured: set doc_id in the config or pass one explicitly")
	}

	a.publish(events.TypeGenerationStarted, map[string]any{
		"topic":    req.Topic,
		"priority": string(req.Priority),
	})

	result, err := a.generator.Generate(ctx, req)
	if err != nil {
		a.publishError(err)
		return nil, err
	}

	a.publish(events.TypeGenerationCompleted, map[string]any{
		"title":      result.Entry.Title,
		"confidence": result.Metrics.ConfidenceScore,
		"risk":       result.Metrics.HallucinationRisk,
	})

	if err := a.write(ctx, docID, result, includeMetrics); err != nil {
		a.publishError(err)
		return nil, err
	}

	a.publish(events.TypeWriteCompleted, map[string]any{
		"doc_id": docID,
		"title":  result.Entry.Title,
	})

	a.record(docID, result)

	return &Outcome{
		Entry:     result.Entry,
		Metrics:   result.Metrics,
		Timestamp: result.Timestamp,
		DocID:     docID,
		DocURL:    docs.DocURL(docID),
	}, nil
}

// write computes the insertion point and applies the assembled batch under
// the single-writer lock.
func (a *Assistant) write(ctx context.Context, docID string, result *llm.Result, includeMetrics bool) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	doc, err := a.sink.GetDocument(ctx, docID)
	if err != nil {
		return err
	}
	startOffset := docs.SafeInsertionIndex(doc)

	metrics := result.Metrics
	if !includeMetrics {
		metrics = nil
	}
	ops, err := worklog.Assemble(startOffset, result.Entry, result.Timestamp, metrics)
	if err != nil {
		return err
	}

	requests, err := docs.BatchRequests(ops)
	if err != nil {
		return err
	}

	a.logger.Logf("Writing %d operations to document %s at offset %d", len(requests), docID, startOffset)
	return a.sink.BatchUpdate(ctx, docID, requests)
}

// record stores the outcome locally; failures are logged, never fatal.
func (a *Assistant) record(docID string, result *llm.Result) {
	if a.store == nil {
		return
	}
	err := a.store.Record(history.Record{
		Title:      result.Entry.Title,
		Priority:   result.Entry.Priority,
		DocID:      docID,
		Provider:   a.generator.ProviderName(),
		Confidence: result.Metrics.ConfidenceScore,
	})
	if err != nil {
		a.logger.Logf("Could not record history entry: %v", err)
	}
}

func (a *Assistant) publish(eventType string, data any) {
	if a.bus != nil {
		a.bus.Publish(eventType, data)
	}
}

func (a *Assistant) publishError(err error) {
	if a.bus != nil {
		a.bus.Publish(events.TypeError, map[string]string{"error": err.Error()})
	}
}
