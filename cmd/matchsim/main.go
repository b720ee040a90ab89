// Command matchsim replays a scripted order tape against a constructed
// engine and logs acks, nacks, and trades as they arrive. It is a
// demonstration driver, not a network service: the tape is the ingress
// seam and the log is the observer seam, the two external collaborators
// left to the caller.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchingsim/internal/common"
	"matchingsim/internal/engine"
	"matchingsim/internal/observe"
)

func main() {
	tapePath := flag.String("tape", "", "path to a JSON-lines order tape (required)")
	numWorkers := flag.Int("workers", 4, "number of dispatcher worker shards")
	instrumentsFlag := flag.String("instruments", "1", "comma-separated instrument IDs to support")
	drain := flag.Duration("drain", 200*time.Millisecond, "grace period to let the dispatcher drain before terminating")
	flag.Parse()

	if *tapePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -tape is required")
		flag.Usage()
		os.Exit(1)
	}

	runID := uuid.New().String()
	log.Logger = log.With().Str("run", runID).Logger()

	instruments, err := parseInstruments(*instrumentsFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -instruments")
	}

	sink := &loggingSink{}
	obs := observe.NewFanoutObserver()
	for _, clientID := range discoverClients(*tapePath) {
		obs.RegisterClient(clientID, sink)
	}

	eng, err := engine.NewDefault(*numWorkers, instruments, obs)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to construct engine")
	}

	replayed, err := replayTape(*tapePath, eng)
	if err != nil {
		log.Fatal().Err(err).Msg("error replaying tape")
	}
	log.Info().Int("requests", replayed).Msg("tape replay submitted")

	time.Sleep(*drain)
	eng.Terminate()
}

func parseInstruments(s string) ([]common.InstrumentID, error) {
	parts := strings.Split(s, ",")
	instruments := make([]common.InstrumentID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing instrument %q: %w", p, err)
		}
		instruments = append(instruments, common.InstrumentID(n))
	}
	if len(instruments) == 0 {
		return nil, fmt.Errorf("no instruments given")
	}
	return instruments, nil
}

// tapeRecord is one line of the replay tape: a single client order request.
type tapeRecord struct {
	Action     string `json:"action"`     // "new" or "cancel"
	Side       string `json:"side"`       // "buy" or "sell"
	OrderType  string `json:"order_type"` // "limit" or "market"
	OrderID    uint64 `json:"order_id"`
	Size       uint64 `json:"size"`
	Price      uint64 `json:"price"`
	Client     uint64 `json:"client"`
	Instrument uint64 `json:"instrument"`
}

func (r tapeRecord) toRequest() (common.ClientOrderRequest[common.NoExt], error) {
	req := common.ClientOrderRequest[common.NoExt]{
		OrderID:    common.OrderID(r.OrderID),
		Size:       common.Size(r.Size),
		Price:      common.Price(r.Price),
		Client:     common.ClientID(r.Client),
		Instrument: common.InstrumentID(r.Instrument),
	}

	switch strings.ToLower(r.Action) {
	case "new":
		req.Action = common.New
	case "cancel":
		req.Action = common.Cancel
	default:
		return req, fmt.Errorf("unknown action %q", r.Action)
	}

	switch strings.ToLower(r.Side) {
	case "buy":
		req.Side = common.Buy
	case "sell":
		req.Side = common.Sell
	default:
		if req.Action == common.New {
			return req, fmt.Errorf("unknown side %q", r.Side)
		}
	}

	switch strings.ToLower(r.OrderType) {
	case "", "limit":
		req.OrderType = common.Limit
	case "market":
		req.OrderType = common.Market
	default:
		return req, fmt.Errorf("unknown order type %q", r.OrderType)
	}

	return req, nil
}

// replayTape reads the tape line by line and submits each parsed request
// in order, returning the count submitted.
func replayTape(path string, eng *engine.Engine[common.NoExt]) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	submitted := 0
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rec tapeRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Error().Err(err).Int("line", lineNo).Msg("skipping malformed tape record")
			continue
		}
		req, err := rec.toRequest()
		if err != nil {
			log.Error().Err(err).Int("line", lineNo).Msg("skipping invalid tape record")
			continue
		}
		eng.Submit(req)
		submitted++
	}
	return submitted, scanner.Err()
}

// discoverClients pre-scans the tape for distinct client IDs so the
// observer has every sink registered before replay starts; events for a
// client discovered only after submission begins would otherwise race the
// registration.
func discoverClients(path string) []common.ClientID {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	seen := make(map[common.ClientID]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var rec tapeRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		seen[common.ClientID(rec.Client)] = struct{}{}
	}

	clients := make([]common.ClientID, 0, len(seen))
	for c := range seen {
		clients = append(clients, c)
	}
	return clients
}

// loggingSink is the observer's only collaborator for this demo: it logs
// every event through zerolog instead of forwarding it over a wire.
type loggingSink struct{}

func (s *loggingSink) OnTradeEvent(orderID common.OrderID, instrument common.InstrumentID, price common.Price, size common.Size) {
	log.Info().
		Uint64("order", uint64(orderID)).
		Uint64("instrument", uint64(instrument)).
		Uint64("price", uint64(price)).
		Uint64("size", uint64(size)).
		Msg("trade")
}

func (s *loggingSink) OnOrderRequestResponse(
	orderID common.OrderID,
	instrument common.InstrumentID,
	orderPrice common.Price,
	orderSize common.Size,
	result common.RequestResult,
	validation common.ValidationResponse,
) {
	ev := log.Info()
	if result == common.Nack {
		ev = log.Warn()
	}
	ev.
		Uint64("order", uint64(orderID)).
		Uint64("instrument", uint64(instrument)).
		Uint64("price", uint64(orderPrice)).
		Uint64("size", uint64(orderSize)).
		Str("result", result.String()).
		Str("validation", validation.String()).
		Msg("response")
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
