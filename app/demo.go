package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

// Demo generation limits.
const (
	DefaultDemoCount = 100
	DefaultDemoDays  = 30
	MaxDemoCount     = 10000
	MaxDemoDays      = 365
)

var demoNetworks = []string{"eip155:84532", "eip155:8453", "eip155:1", "eip155:137", "eip155:42161"}

var demoAgents = []struct {
	id   string
	kind usage.AgentType
}{
	{"claude-agent-001", usage.AgentClaude},
	{"gpt-agent-002", usage.AgentGPT},
	{"gemini-agent-003", usage.AgentGemini},
	{"custom-bot-004", usage.AgentCustom},
	{"", ""},
}

var demoEndpoints = []string{"/api/v1/chat", "/api/v1/generate", "/api/v1/analyze", "/api/v1/translate", "/api/v1/summarize"}

type demoService struct {
	id       string
	name     string
	category spending.Category
	baseCost int64
}

var demoServices = []demoService{
	{"openai-gpt4", "OpenAI GPT-4", spending.CategoryLanguageModel, 50000},
	{"anthropic-claude", "Anthropic Claude", spending.CategoryLanguageModel, 45000},
	{"google-gemini", "Google Gemini Pro", spending.CategoryLanguageModel, 40000},
	{"midjourney-api", "Midjourney API", spending.CategoryImageGeneration, 200000},
	{"stability-ai", "Stability AI", spending.CategoryImageGeneration, 100000},
	{"elevenlabs-voice", "ElevenLabs Voice", spending.CategoryVoice, 30000},
	{"runway-video", "Runway Video", spending.CategoryVideo, 250000},
	{"weather-api", "Weather API", spending.CategoryDataAPI, 5000},
	{"financial-data", "Financial Data API", spending.CategoryDataAPI, 10000},
	{"ipfs-storage", "IPFS Storage", spending.CategoryStorage, 15000},
	{"replicate-api", "Replicate API", spending.CategoryCompute, 60000},
	{"mixpanel", "Mixpanel Analytics", spending.CategoryAnalytics, 12000},
	{"chainlink-oracle", "Chainlink Oracle", spending.CategoryBlockchain, 80000},
	{"misc-tools", "Misc Tools", spending.CategoryOther, 2000},
}

var demoBuyerEndpoints = []string{"/chat/completions", "/generate", "/analyze", "/query", "/process", "/upload", "/verify"}

// DemoSummary reports what a generation run produced.
type DemoSummary struct {
	Generated int            `json:"generated"`
	ByStatus  map[string]int `json:"byStatus"`
	AmountSum int64          `json:"amountSum"`
	From      time.Time      `json:"from"`
	To        time.Time      `json:"to"`
}

func newDemoSummary(now time.Time, days int) DemoSummary {
	return DemoSummary{
		ByStatus: make(map[string]int),
		From:     now.AddDate(0, 0, -days),
		To:       now,
	}
}

// DemoGenerator fills the ledgers with realistic sample events.
type DemoGenerator struct {
	usage    *UsageLogger
	spending *SpendingLogger
	clock    ports.Clock
	logger   zerolog.Logger

	mu    sync.Mutex // guards faker
	faker *gofakeit.Faker
}

// DemoDeps contains dependencies for DemoGenerator.
// Either logger may be nil when that side is disabled.
type DemoDeps struct {
	Usage    *UsageLogger
	Spending *SpendingLogger
	Clock    ports.Clock
	Logger   zerolog.Logger
}

// NewDemoGenerator creates a generator. A zero seed picks a random one.
func NewDemoGenerator(deps DemoDeps, seed int64) *DemoGenerator {
	return &DemoGenerator{
		usage:    deps.Usage,
		spending: deps.Spending,
		clock:    deps.Clock,
		logger:   deps.Logger.With().Str("service", "demo").Logger(),
		faker:    gofakeit.New(seed),
	}
}

// ValidateDemoRequest checks count and days against the generation limits.
func ValidateDemoRequest(count, days int) error {
	if count < 1 || count > MaxDemoCount {
		return errs.Invalid("count", fmt.Sprint(count), fmt.Sprintf("must be between 1 and %d", MaxDemoCount))
	}
	if days < 1 || days > MaxDemoDays {
		return errs.Invalid("days", fmt.Sprint(days), fmt.Sprintf("must be between 1 and %d", MaxDemoDays))
	}
	return nil
}

// GenerateUsage logs count seller events spread over the last days days.
// Mix: 70% SUCCESS, 20% PAYMENT_REQUIRED, 10% VERIFY_FAILED or SETTLE_FAILED.
func (g *DemoGenerator) GenerateUsage(ctx context.Context, count, days int) (DemoSummary, error) {
	if g.usage == nil {
		return DemoSummary{}, fmt.Errorf("seller ledger is disabled")
	}
	if err := ValidateDemoRequest(count, days); err != nil {
		return DemoSummary{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	sum := newDemoSummary(now, days)
	for i := 0; i < count; i++ {
		e, err := g.usage.Log(ctx, g.usageEvent(now, days))
		if err != nil {
			return sum, fmt.Errorf("generate usage event %d: %w", i, err)
		}
		sum.Generated++
		sum.ByStatus[string(e.Status)]++
		if e.Succeeded() {
			sum.AmountSum += e.Amount()
		}
	}

	g.logger.Info().Int("count", sum.Generated).Int64("amount", sum.AmountSum).Msg("seller demo data generated")
	return sum, nil
}

func (g *DemoGenerator) usageEvent(now time.Time, days int) usage.Event {
	f := g.faker
	agent := demoAgents[f.IntRange(0, len(demoAgents)-1)]
	createdAt := g.spread(now, days)

	e := usage.Event{
		AgentID:   agent.id,
		AgentType: agent.kind,
		Method:    g.pick("POST", "POST", "GET"),
		Endpoint:  demoEndpoints[f.IntRange(0, len(demoEndpoints)-1)],
		ClientIP:  f.IPv4Address(),
		UserAgent: f.UserAgent(),
		LatencyMs: Millis(time.Duration(f.IntRange(50, 500)) * time.Millisecond),
		CreatedAt: createdAt,
	}
	e.RequestedAt = &createdAt

	switch roll := f.IntRange(1, 100); {
	case roll <= 70:
		e.Status = usage.StatusSuccess
		e.Network = demoNetworks[f.IntRange(0, len(demoNetworks)-1)]
		e.Asset = g.pick("USDC", "USDC", "USDT", "ETH")
		amount := int64(f.IntRange(1000, 10_000_000))
		e.AmountAtomic = &amount
		e.TxHash = g.txHash()
		settled := createdAt.Add(time.Duration(f.IntRange(1, 60)) * time.Second)
		e.SettledAt = &settled
	case roll <= 90:
		e.Status = usage.StatusPaymentRequired
	case roll <= 95:
		e.Status = usage.StatusVerifyFailed
		e.ErrorMessage = "payment signature invalid"
	default:
		e.Status = usage.StatusSettleFailed
		e.ErrorMessage = "settlement reverted"
	}
	return e
}

// GenerateSpending logs count buyer events spread over the last days days.
// Mix: 75% SUCCESS, 10% PENDING, 10% FAILED, 5% REJECTED.
func (g *DemoGenerator) GenerateSpending(ctx context.Context, count, days int) (DemoSummary, error) {
	if g.spending == nil {
		return DemoSummary{}, fmt.Errorf("buyer ledger is disabled")
	}
	if err := ValidateDemoRequest(count, days); err != nil {
		return DemoSummary{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	sum := newDemoSummary(now, days)
	cfg := g.spending.Config()
	for i := 0; i < count; i++ {
		e, err := g.spending.Log(ctx, g.spendingEvent(now, days, cfg))
		if err != nil {
			return sum, fmt.Errorf("generate spending event %d: %w", i, err)
		}
		sum.Generated++
		sum.ByStatus[string(e.Status)]++
		if e.Succeeded() {
			sum.AmountSum += e.Amount()
		}
	}

	g.logger.Info().Int("count", sum.Generated).Int64("amount", sum.AmountSum).Msg("buyer demo data generated")
	return sum, nil
}

func (g *DemoGenerator) spendingEvent(now time.Time, days int, cfg SpendingLoggerConfig) spending.Event {
	f := g.faker
	svc := demoServices[f.IntRange(0, len(demoServices)-1)]
	createdAt := g.spread(now, days)

	e := spending.Event{
		BuyerID:     cfg.DefaultBuyerID,
		BuyerName:   cfg.DefaultBuyerName,
		ServiceID:   svc.id,
		ServiceName: svc.name,
		ServiceURL:  "https://api." + strings.ReplaceAll(svc.id, "-", "") + ".com",
		Endpoint:    demoBuyerEndpoints[f.IntRange(0, len(demoBuyerEndpoints)-1)],
		Method:      "POST",
		Category:    svc.category,
		LatencyMs:   Millis(time.Duration(f.IntRange(50, 1000)) * time.Millisecond),
		CreatedAt:   createdAt,
	}
	e.RequestedAt = &createdAt

	switch roll := f.IntRange(1, 100); {
	case roll <= 75:
		e.Status = spending.StatusSuccess
		e.Network = demoNetworks[f.IntRange(0, len(demoNetworks)-1)]
		e.Asset = "USDC"
		// base cost +/- 30%
		amount := svc.baseCost * int64(f.IntRange(70, 130)) / 100
		e.AmountAtomic = &amount
		e.TxHash = g.txHash()
		settled := createdAt.Add(time.Duration(f.IntRange(1, 30)) * time.Second)
		e.SettledAt = &settled
	case roll <= 85:
		e.Status = spending.StatusPending
		e.PaymentID = "pay_" + f.UUID()[:8]
	case roll <= 95:
		e.Status = spending.StatusFailed
		e.ErrorMessage = g.pick("insufficient balance", "facilitator timeout", "nonce already used")
	default:
		e.Status = spending.StatusRejected
		e.ErrorMessage = "budget limit exceeded"
	}
	return e
}

// spread picks an instant within the last days days.
func (g *DemoGenerator) spread(now time.Time, days int) time.Time {
	back := time.Duration(g.faker.Int64()%int64(days*24*60)) * time.Minute
	if back < 0 {
		back = -back
	}
	return now.Add(-back)
}

func (g *DemoGenerator) pick(options ...string) string {
	return options[g.faker.IntRange(0, len(options)-1)]
}

func (g *DemoGenerator) txHash() string {
	const hex = "0123456789abcdef"
	var b strings.Builder
	b.WriteString("0x")
	for i := 0; i < 64; i++ {
		b.WriteByte(hex[g.faker.IntRange(0, 15)])
	}
	return b.String()
}
