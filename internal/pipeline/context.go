// Package pipeline wires the core components together behind the §6
// exposed interfaces: BuildLighthouse, LoadRegistries, GenerateQuestlines,
// ProveQuestlines, Inscribe, Price, ApplyPurchase. It is the one place in
// the core that knows about all of KI/SR/AM/GR/QG/AS/MP/IB/EE at once;
// none of those packages import each other except through this layer
// (besides questgen's direct dependency on lighthouse/sourcereg/oracle/
// authenticity/entropy, which spec.md §4.6 already specifies as QG's own
// collaborators, authenticity's on sourcereg, and oracle's on entropy).
//
// Grounded on cmd/engine/main.go's top-to-bottom wiring shape (load
// config, connect collaborators, construct dependents, run) and spec.md
// §9's CoreContext re-architecture of the teacher's process-wide
// singletons: one immutable handle, passed by reference, never a
// package-level mutable.
package pipeline

import (
	"sync/atomic"

	"github.com/enochian/lighthouse/internal/aethyr"
	"github.com/enochian/lighthouse/internal/lighthouse"
	"github.com/enochian/lighthouse/internal/oracle"
	"github.com/enochian/lighthouse/internal/questgen"
	"github.com/enochian/lighthouse/internal/sourcereg"
)

// CoreContext bundles the read-only-after-construction collaborators every
// run needs: the Knowledge Index, Source Registry, and Aethyr/Governor
// map, plus the generation parameters. It is built once by BuildLighthouse
// + LoadRegistries and passed by reference to every subsequent call; no
// core package holds mutable package-level state (spec.md §9, §1
// Non-goals: "no global mutable singletons inside the core").
type CoreContext struct {
	KI     *lighthouse.Lighthouse
	SR     *sourcereg.Registry
	AM     *aethyr.Map
	Params Params

	// counter is the opaque monotonic counter used for AuthenticityBatch
	// and RunReport timestamps (spec.md: "opaque counter, not wall-clock").
	counter int64
}

// Params holds the tunable generation parameters threaded through
// QG/AS/EE. NewCoreContext replaces zero-valued fields with spec.md's
// defaults.
type Params struct {
	QuestgenConfig questgen.Config
	PoolConfig     questgen.PoolConfig
	Oracle         oracle.ContentOracle
}

// NewCoreContext assembles a CoreContext from already-built collaborators.
func NewCoreContext(ki *lighthouse.Lighthouse, sr *sourcereg.Registry, am *aethyr.Map, params Params) *CoreContext {
	if params.QuestgenConfig == (questgen.Config{}) {
		params.QuestgenConfig = questgen.DefaultConfig()
	}
	if params.PoolConfig.Concurrency <= 0 {
		params.PoolConfig.Concurrency = questgen.DefaultConcurrency
	}
	params.PoolConfig.Config = params.QuestgenConfig
	if params.Oracle == nil {
		params.Oracle = oracle.NewDeterministicMock()
	}
	return &CoreContext{KI: ki, SR: sr, AM: am, Params: params}
}

// NextCounter returns the next value of the run-local monotonic counter,
// used to stamp AuthenticityBatch.CreatedAt and RunReport.CreatedAtCounter
// without ever reading wall-clock time inside the core.
func (c *CoreContext) NextCounter() int64 {
	return atomic.AddInt64(&c.counter, 1)
}
