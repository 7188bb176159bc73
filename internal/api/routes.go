package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/enochian/lighthouse/internal/coreerr"
	"github.com/enochian/lighthouse/internal/entropy"
	"github.com/enochian/lighthouse/internal/pipeline"
	"github.com/enochian/lighthouse/internal/store"
	"github.com/enochian/lighthouse/pkg/models"
)

// APIHandler wires the pipeline's CoreContext plus optional persistence
// and live-broadcast collaborators behind the HTTP surface. It holds the
// most recent run's results in memory so questline/batch/price lookups
// don't require re-deriving anything — the core itself stays read-only
// after construction (spec.md §9), only this handler's cache mutates.
type APIHandler struct {
	core     *pipeline.CoreContext
	provider entropy.BlockMetadataProvider
	dbStore  *store.PostgresStore
	wsHub    *Hub

	mu           sync.Mutex
	lastReport   models.RunReport
	questlines   map[int]models.Questline
	batches      map[int]models.AuthenticityBatch
	inscriptions []models.InscriptionBatch
	pools        map[string]*models.LiquidityPool
}

func SetupRouter(core *pipeline.CoreContext, provider entropy.BlockMetadataProvider, dbStore *store.PostgresStore, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	// Enable CORS — configurable via ALLOWED_ORIGINS env var.
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{
		core:       core,
		provider:   provider,
		dbStore:    dbStore,
		wsHub:      wsHub,
		questlines: make(map[int]models.Questline),
		batches:    make(map[int]models.AuthenticityBatch),
		pools:      make(map[string]*models.LiquidityPool),
	}

	pub := r.Group("/api/v1")
	{
		pub.GET("/health", handler.handleHealth)
		pub.GET("/stream", wsHub.Subscribe)
		pub.GET("/governors", handler.handleListGovernors)
		pub.GET("/questlines", handler.handleListQuestlines)
		pub.GET("/questlines/:governorId", handler.handleGetQuestline)
		pub.GET("/inscriptions", handler.handleListInscriptions)
		pub.GET("/runs", handler.handleListRuns)
	}

	auth := r.Group("/api/v1")
	auth.Use(AuthMiddleware())
	auth.Use(NewRateLimiter(30, 5).Middleware())
	{
		auth.POST("/runs", handler.handleStartRun)
		auth.POST("/price/:questId", handler.handlePrice)
		auth.POST("/pools/:poolId/purchase", handler.handlePurchase)
	}

	r.Static("/dashboard", "./public")

	return r
}

// handleHealth returns engine status for service discovery.
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "operational",
		"engine":      "enochian lighthouse",
		"dbConnected": h.dbStore != nil,
		"governors":   len(h.core.AM.AllGovernors()),
	})
}

func (h *APIHandler) handleListGovernors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"governors": h.core.AM.AllGovernors()})
}

// handleStartRun drives one full generation cycle: fetch block entropy,
// generate questlines, seal authenticity proofs, and pack inscription
// batches, broadcasting a completion event over the WebSocket hub and
// persisting the run's diagnostic report when a database is connected.
// POST /api/v1/runs { "blockHeight": 871000 }
func (h *APIHandler) handleStartRun(c *gin.Context) {
	var req struct {
		BlockHeight int64 `json:"blockHeight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BlockHeight <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body, expected {blockHeight}"})
		return
	}

	ctx := c.Request.Context()
	questlines, report, err := h.core.GenerateQuestlines(ctx, h.provider, req.BlockHeight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate questlines", "details": err.Error()})
		return
	}

	batches := h.core.ProveQuestlines(questlines)
	inscriptions, ibErrs := h.core.Inscribe(batches, models.PayloadKindContent)

	report.RunID = uuid.NewString()
	report.InscriptionBatchCount = len(inscriptions)
	for _, e := range ibErrs {
		if ce, ok := e.(*coreerr.Error); ok && ce.Kind == coreerr.KindIrreducibleOversizeTradition {
			report.OversizeTraditions = append(report.OversizeTraditions, ce.TraditionID)
		}
	}

	h.mu.Lock()
	h.lastReport = report
	h.questlines = make(map[int]models.Questline, len(questlines))
	for _, ql := range questlines {
		h.questlines[ql.GovernorID] = ql
	}
	h.batches = make(map[int]models.AuthenticityBatch, len(batches))
	for _, b := range batches {
		h.batches[b.GovernorID] = b
	}
	h.inscriptions = inscriptions
	h.mu.Unlock()

	if h.dbStore != nil {
		dbCtx := context.Background()
		if err := h.dbStore.SaveRunReport(dbCtx, report); err != nil {
			log.Printf("failed to persist run report: %v", err)
		}
		if err := h.dbStore.SaveInscriptionBatches(dbCtx, report.RunID, inscriptions); err != nil {
			log.Printf("failed to persist inscription batches: %v", err)
		}
	}

	h.wsHub.Broadcast(runCompleteEvent(report))

	c.JSON(http.StatusOK, report)
}

func (h *APIHandler) handleListQuestlines(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.Questline, 0, len(h.questlines))
	for _, ql := range h.questlines {
		out = append(out, ql)
	}
	c.JSON(http.StatusOK, gin.H{"questlines": out, "lastRun": h.lastReport.RunID})
}

func (h *APIHandler) handleGetQuestline(c *gin.Context) {
	governorID, err := strconv.Atoi(c.Param("governorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid governor id"})
		return
	}

	h.mu.Lock()
	ql, ok := h.questlines[governorID]
	batch, hasBatch := h.batches[governorID]
	h.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no questline cached for this governor; trigger a run first"})
		return
	}
	resp := gin.H{"questline": ql}
	if hasBatch {
		resp["authenticityBatch"] = batch
	}
	c.JSON(http.StatusOK, resp)
}

func (h *APIHandler) handleListInscriptions(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	summaries := make([]gin.H, len(h.inscriptions))
	for i, b := range h.inscriptions {
		summaries[i] = gin.H{
			"inscriptionId":     b.InscriptionID,
			"payloadKind":       b.PayloadKind,
			"sequenceNo":        b.SequenceNo,
			"traditionsInBatch": b.TraditionsInBatch,
			"entryCount":        b.EntryCount,
			"compressedSize":    b.CompressedSize,
			"payloadDigest":     b.PayloadDigest,
			"state":             b.State,
		}
	}
	c.JSON(http.StatusOK, gin.H{"inscriptions": summaries})
}

func (h *APIHandler) handleListRuns(c *gin.Context) {
	if h.dbStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not connected"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.dbStore.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// handlePrice computes a quest's current PricePoint against a named
// liquidity pool, creating the pool with a default balanced reserve on
// first reference.
// POST /api/v1/price/:questId { "poolId": "enochian-pool-1" }
func (h *APIHandler) handlePrice(c *gin.Context) {
	questID := c.Param("questId")
	var req struct {
		PoolID string `json:"poolId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PoolID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body, expected {poolId}"})
		return
	}

	quest, ok := h.findQuest(questID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "quest not found in the cached run"})
		return
	}

	pool := h.poolFor(req.PoolID)
	point := pipeline.Price(quest, economicsMarketState(pool))
	c.JSON(http.StatusOK, point)
}

// handlePurchase applies a purchase to a liquidity pool's constant-product
// reserves. POST /api/v1/pools/:poolId/purchase { "amountInQuote": 100000000, "basePrice": 4720000 }
func (h *APIHandler) handlePurchase(c *gin.Context) {
	poolID := c.Param("poolId")
	var req struct {
		AmountInQuote int64 `json:"amountInQuote"`
		BasePrice     int64 `json:"basePrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pool := h.poolFor(poolID)
	h.mu.Lock()
	result, err := pipeline.ApplyPurchase(pool, req.AmountInQuote, req.BasePrice)
	h.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) findQuest(questID string) (models.Quest, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ql := range h.questlines {
		for _, q := range ql.Quests {
			if q.QuestID == questID {
				return q, true
			}
		}
	}
	return models.Quest{}, false
}

func (h *APIHandler) poolFor(poolID string) *models.LiquidityPool {
	h.mu.Lock()
	defer h.mu.Unlock()
	pool, ok := h.pools[poolID]
	if !ok {
		pool = &models.LiquidityPool{
			PoolID:       poolID,
			TokenReserve: 10_000 * 1_000_000,
			QuoteReserve: 47_200 * 1_000_000,
			SpotPrice:    4_720_000,
		}
		h.pools[poolID] = pool
	}
	return pool
}
