// Package facade is the engine's single entry point: it owns the
// restriction store, the derived locked-folder map, and every collaborator
// (permission evaluator, parser, get-request handler, forced-action
// executor), and orchestrates the mutate-then-emit discipline of spec.md §5
// — every store mutation happens, its Events are collected, the mutation's
// lock is released, and only then are notifications fanned out. Grounded on
// the teacher's internal/kernel, whose actor loop does the same
// handle-under-lock / emit-after-release split for every message it
// processes.
package facade

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"rlv/internal/action"
	"rlv/internal/audit"
	"rlv/internal/behavior"
	"rlv/internal/getrequest"
	"rlv/internal/hostapi"
	"rlv/internal/inventory"
	"rlv/internal/lockfolder"
	"rlv/internal/permission"
	"rlv/internal/restriction"
	"rlv/internal/rlvlog"
	"rlv/internal/rlvparser"
)

// Engine is the facade's concrete implementation. Its own mutex guards only
// the cached inventory map and lock-folder map; restriction.Store has its
// own independent mutex (spec.md §5: "one mutex per store").
type Engine struct {
	Store     *restriction.Store
	Blacklist *behavior.Blacklist
	Eval      *permission.Evaluator
	Query     hostapi.Query
	Action    hostapi.Action
	Audit     *audit.Trail // nil disables auditing

	// OnEvent, when non-nil, receives every restriction Event after its
	// mutation commits and outside any engine lock (spec.md §6's outbound
	// restriction events).
	OnEvent func(restriction.Event)

	getHandler *getrequest.Handler
	executor   *action.Executor

	mu     sync.RWMutex
	invMap *inventory.Map
	locks  lockfolder.Map
}

// New wires the collaborators together from the ambient store/callbacks.
func New(store *restriction.Store, blacklist *behavior.Blacklist, query hostapi.Query, act hostapi.Action, trail *audit.Trail) *Engine {
	eval := permission.New(store)
	e := &Engine{
		Store:     store,
		Blacklist: blacklist,
		Eval:      eval,
		Query:     query,
		Action:    act,
		Audit:     trail,
		locks:     make(lockfolder.Map),
	}
	e.getHandler = &getrequest.Handler{Store: store, Eval: eval, Blacklist: blacklist, Query: query}
	e.executor = &action.Executor{Eval: eval, Action: act, Query: query}
	return e
}

// RefreshInventory re-pulls the shared inventory snapshot from the host and
// rebuilds both the denormalized inventory map and the locked-folder map
// from scratch (spec.md §4.4: "rebuilt ... on every load of a fresh
// inventory snapshot"). Callers that mutate attach/detach state should call
// this before evaluating CanWear/CanRemove against stale data.
func (e *Engine) RefreshInventory(ctx context.Context) error {
	if e.Query == nil {
		return nil
	}
	snap, ok, err := e.Query.TryGetInventoryMap(ctx)
	if err != nil {
		return fmt.Errorf("facade: refresh inventory: %w", err)
	}
	if !ok {
		return nil
	}
	inv := inventory.Build(snap)
	locks := lockfolder.Derive(e.Store, inv)

	e.mu.Lock()
	e.invMap = inv
	e.locks = locks
	e.mu.Unlock()
	return nil
}

func (e *Engine) snapshot() (*inventory.Map, lockfolder.Map) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.invMap, e.locks
}

// ProcessMessage is the chat-borne command entry point (spec.md §4.8). The
// boolean result is the AND of the per-segment results (spec.md §4.1): false
// when the message is not an @command at all, or when any segment fails to
// parse or is rejected. A host-callback error aborts processing and is
// returned to the caller with engine state already committed (spec.md §7).
func (e *Engine) ProcessMessage(ctx context.Context, msg string, senderID string, senderName string) (bool, error) {
	if !strings.HasPrefix(msg, "@") {
		return false, nil
	}
	all := true
	for _, seg := range rlvparser.ParseMessage(msg) {
		if !seg.OK {
			rlvlog.Debug("facade: discarding unparseable segment %q", seg.Command.Raw)
			all = false
			continue
		}
		ok, err := e.dispatch(ctx, seg.Command, senderID, senderName)
		if err != nil {
			return false, err
		}
		all = all && ok
	}
	return all, nil
}

// ProcessInstantMessage handles the same command grammar arriving over IM
// rather than chat (spec.md §4.8); RLV commands are accepted from either
// channel identically.
func (e *Engine) ProcessInstantMessage(ctx context.Context, msg string, senderID string, senderName string) (bool, error) {
	return e.ProcessMessage(ctx, msg, senderID, senderName)
}

// ObjectVanished removes every restriction issued by primID, used when the
// host reports the object no longer exists (spec.md §3, §4.2).
func (e *Engine) ObjectVanished(primID string) {
	events := e.Store.RemoveByIssuer(primID)
	e.rebuildLocksIfNeeded(events)
	e.emit(events)
}

// SweepVanishedIssuers asks the host which live issuers still exist and
// drops restrictions from the ones that don't. Hosts call this periodically
// or after region changes.
func (e *Engine) SweepVanishedIssuers(ctx context.Context) error {
	if e.Query == nil {
		return nil
	}
	for _, issuer := range e.Store.Issuers() {
		exists, err := e.Query.ObjectExists(ctx, issuer)
		if err != nil {
			return fmt.Errorf("facade: sweep issuer %s: %w", issuer, err)
		}
		if !exists {
			e.ObjectVanished(issuer)
		}
	}
	return nil
}

func (e *Engine) blacklisted(cmd rlvparser.Command) bool {
	return e.Blacklist != nil && e.Blacklist.Contains(cmd.OriginalBehavior)
}

func (e *Engine) dispatch(ctx context.Context, cmd rlvparser.Command, senderID, senderName string) (bool, error) {
	switch cmd.Op {
	case rlvparser.OpClear:
		events := e.Store.Clear(senderID, cmd.ClearFilter)
		e.rebuildLocksIfNeeded(events)
		e.emit(events)
		return true, nil

	case rlvparser.OpAdd:
		if e.blacklisted(cmd) {
			return false, nil
		}
		r := restriction.Restriction{
			Behavior:         cmd.Behavior,
			OriginalBehavior: cmd.OriginalBehavior,
			IssuerPrimID:     senderID,
			IssuerName:       senderName,
			Args:             cmd.Args,
		}
		events := e.Store.Add(r)
		e.extendLocksIfNeeded(ctx, r)
		e.emit(events)
		return true, nil

	case rlvparser.OpRemove:
		if e.blacklisted(cmd) {
			return false, nil
		}
		r := restriction.Restriction{
			Behavior:         cmd.Behavior,
			OriginalBehavior: cmd.OriginalBehavior,
			IssuerPrimID:     senderID,
			IssuerName:       senderName,
			Args:             cmd.Args,
		}
		events := e.Store.Remove(r)
		e.rebuildLocksIfNeeded(events)
		e.emit(events)
		return true, nil

	case rlvparser.OpGet:
		// The blacklist's documented silencing (an empty reply that still
		// consumes the query) lives in getrequest.Handler.
		inv, _ := e.freshInventory(ctx)
		err := e.getHandler.Handle(ctx, e.Action, cmd.OriginalBehavior, cmd.Option, cmd.Channel, senderID, inv)
		return err == nil, err

	case rlvparser.OpForce:
		if e.blacklisted(cmd) {
			return false, nil
		}
		slog.Info("forced action dispatched", slog.String("behavior", string(cmd.Behavior)), slog.String("issuer", senderID))
		inv, locks := e.freshInventory(ctx)
		err := e.executor.Execute(ctx, cmd, senderID, inv, locks)
		return err == nil, err
	}
	return false, nil
}

// freshInventory re-pulls the host's inventory snapshot for a command that
// needs one (the map is built once per query, spec.md §3), falling back to
// the last good cache when the pull fails.
func (e *Engine) freshInventory(ctx context.Context) (*inventory.Map, lockfolder.Map) {
	if err := e.RefreshInventory(ctx); err != nil {
		rlvlog.Warn("facade: inventory refresh failed, using cache: %v", err)
	}
	return e.snapshot()
}

// lockKinds mirrors lockfolder's own registry so the facade knows when a
// store mutation requires a locked-folder rebuild.
var lockKinds = map[behavior.Kind]bool{
	"detachthis": true, "detachallthis": true, "attachthis": true, "attachallthis": true,
	"detachthis_except": true, "detachallthis_except": true,
	"attachthis_except": true, "attachallthis_except": true,
}

func (e *Engine) extendLocksIfNeeded(ctx context.Context, r restriction.Restriction) {
	if !lockKinds[r.Behavior] {
		return
	}
	inv, _ := e.snapshot()
	if inv == nil {
		// No cached snapshot yet: a full refresh derives the lock map from
		// the store, which already holds r — nothing left to extend.
		e.freshInventory(ctx)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	lockfolder.ApplyAdd(e.locks, inv, r)
}

func (e *Engine) rebuildLocksIfNeeded(events []restriction.Event) {
	affected := false
	for _, ev := range events {
		if lockKinds[ev.Restriction.Behavior] {
			affected = true
			break
		}
	}
	if !affected {
		return
	}
	inv, _ := e.snapshot()
	if inv == nil {
		return
	}
	locks := lockfolder.Derive(e.Store, inv)
	e.mu.Lock()
	e.locks = locks
	e.mu.Unlock()
}

// emit fans Events out to every active notify restriction whose filter
// substring matches, outside of any lock (spec.md §4.8, §5).
func (e *Engine) emit(events []restriction.Event) {
	for _, ev := range events {
		if e.OnEvent != nil {
			e.OnEvent(ev)
		}
		if ev.Restriction.Behavior == "notify" {
			// Listener registration is not itself a policy change.
			continue
		}
		suffix := "=y"
		if ev.IsNew {
			suffix = "=n"
		}
		msg := "/" + string(ev.Restriction.Behavior)
		if args := ev.Restriction.ArgString(); args != "" {
			msg += ":" + args
		}
		msg += suffix
		e.notify(msg)
	}
}

// notify sends msg to every live notify restriction's channel whose filter
// substring (if any) is contained in msg.
func (e *Engine) notify(msg string) {
	ctx := context.Background()
	for _, r := range e.Store.Snapshot("notify", "") {
		if len(r.Args) < 1 {
			continue
		}
		channel, err := strconv.Atoi(r.Args[0])
		if err != nil {
			continue
		}
		filter := ""
		if len(r.Args) > 1 {
			filter = r.Args[1]
		}
		if filter != "" && !strings.Contains(msg, filter) {
			continue
		}
		if e.Action != nil {
			_ = e.Action.SendReply(ctx, channel, msg)
		}
		if e.Audit != nil {
			_ = e.Audit.RecordNotification(channel, msg)
		}
	}
}

// report formats and fans out a Report* notification (spec.md §4.8, exact
// textual forms per §8).
func (e *Engine) report(kind string, msg string) {
	e.notify(msg)
	if e.Audit != nil {
		_ = e.Audit.RecordReport(kind, msg)
	}
}

// ReportSit notifies that the avatar has sat on an object.
func (e *Engine) ReportSit(objectID string, legally bool) {
	state := "legally"
	if !legally {
		state = "illegally"
	}
	e.report("sit", fmt.Sprintf("/sat object %s %s", state, objectID))
}

// ReportItemAttached notifies that itemName was attached.
func (e *Engine) ReportItemAttached(itemName string, legally bool) {
	state := "legally"
	if !legally {
		state = "illegally"
	}
	e.report("attach", fmt.Sprintf("/worn %s %s", state, itemName))
}

// ReportItemDetached notifies that itemName was detached.
func (e *Engine) ReportItemDetached(itemName string, legally bool) {
	state := "legally"
	if !legally {
		state = "illegally"
	}
	e.report("detach", fmt.Sprintf("/unworn %s %s", state, itemName))
}
