package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pankajrawal86/lvx-agents/internal/dealdata"
	"github.com/pankajrawal86/lvx-agents/internal/domain"
	"github.com/pankajrawal86/lvx-agents/internal/metrics"
)

// ConcurrencyPolicy controls what happens when two invocations target the
// same conversation id at once.
type ConcurrencyPolicy string

const (
	// Serialize queues the second invocation until the first finishes.
	Serialize ConcurrencyPolicy = "serialize"
	// Reject fails the second invocation with ErrConversationBusy.
	Reject ConcurrencyPolicy = "reject"
)

// ErrConversationBusy is returned under the Reject policy when the targeted
// conversation already has an invocation in flight.
var ErrConversationBusy = errors.New("conversation is busy with another request")

// Engine is the top-level per-turn orchestrator: assemble context, route,
// dispatch, persist.
type Engine struct {
	store      domain.ConversationStore
	assembler  *dealdata.Assembler
	router     *Router
	dispatcher *Dispatcher
	policy     ConcurrencyPolicy
	logger     *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(store domain.ConversationStore, assembler *dealdata.Assembler, router *Router, dispatcher *Dispatcher, policy ConcurrencyPolicy, logger *slog.Logger) *Engine {
	if policy != Reject {
		policy = Serialize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:      store,
		assembler:  assembler,
		router:     router,
		dispatcher: dispatcher,
		policy:     policy,
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Analyze runs one turn of the conversation identified by conversationID
// (empty for a new conversation) against the given deal. An unknown deal id
// returns *dealdata.UnknownDealError with no history mutation and no id
// allocated.
func (e *Engine) Analyze(ctx context.Context, dealID, query, conversationID string) (*domain.AnalysisResult, error) {
	if conversationID != "" {
		lock := e.conversationLock(conversationID)
		if e.policy == Reject {
			if !lock.TryLock() {
				return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrConversationBusy)
			}
		} else {
			lock.Lock()
		}
		defer lock.Unlock()
	}

	metrics.QueriesTotal.Inc()
	metrics.ActiveTurns.Inc()
	defer metrics.ActiveTurns.Dec()

	e.logger.Info("starting analysis", "dealID", dealID, "conversationID", conversationID)

	dc, err := e.assembler.Build(ctx, dealID)
	if err != nil {
		var unknown *dealdata.UnknownDealError
		if errors.As(err, &unknown) {
			metrics.UnknownDealsTotal.Inc()
		}
		return nil, err
	}

	history, err := e.store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", conversationID, err)
	}

	dc["query"] = query
	action := e.router.Route(ctx, query, history, dc)
	e.logger.Info("routed query", "action", string(action.Kind), "agent", action.Agent)

	response, pending := e.dispatcher.Dispatch(ctx, action, history, dc)

	if action.Kind == domain.ActionExecuteEmail && len(history) > 0 {
		// The confirmation turn's draft text is replaced by the delivery
		// status, and its pending state is consumed.
		history[len(history)-1].AI = response
		history[len(history)-1].Pending = nil
		history = append(history, domain.Turn{User: query, AI: response})
	} else {
		history = append(history, domain.Turn{User: action.Query, AI: response, Pending: pending})
	}

	id, err := e.store.Save(ctx, conversationID, history)
	if err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	e.logger.Info("analysis complete", "dealID", dealID, "conversationID", id)
	return &domain.AnalysisResult{
		ConversationID: id,
		Analysis:       domain.Analysis{Response: response},
	}, nil
}

func (e *Engine) conversationLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}
