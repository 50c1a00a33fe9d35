package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/bimakw/ivg-dashboard/internal/config"
	"github.com/bimakw/ivg-dashboard/internal/domain/entities"
	"github.com/bimakw/ivg-dashboard/internal/infrastructure/observability"
)

// Client is a Solana JSON-RPC client. Calls are attempted once.
type Client struct {
	rpc    *rpc.Client
	config config.SolanaConfig
	logger *zap.Logger
}

// NewClient creates a client bound to cfg.RPCURL. HTTP endpoints are
// dialed lazily, so no request is made here.
func NewClient(ctx context.Context, cfg config.SolanaConfig, logger *zap.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	client, err := rpc.DialOptions(ctx, cfg.RPCURL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Solana RPC client: %w", err)
	}

	logger.Info("Solana RPC client ready",
		zap.String("rpc_url", cfg.RPCURL),
		zap.Strings("token_programs", cfg.TokenPrograms),
	)

	return &Client{
		rpc:    client,
		config: cfg,
		logger: logger,
	}, nil
}

// Close closes the underlying RPC client
func (c *Client) Close() {
	c.rpc.Close()
}

// HealthCheck calls getHealth; a node that is behind returns an RPC error
func (c *Client) HealthCheck(ctx context.Context) error {
	var status string
	if err := c.rpc.CallContext(ctx, &status, "getHealth"); err != nil {
		return fmt.Errorf("solana rpc unhealthy: %w", err)
	}
	if status != "ok" {
		return fmt.Errorf("solana rpc unhealthy: %s", status)
	}
	return nil
}

type tokenAccountsResponse struct {
	Value []keyedAccount `json:"value"`
}

type keyedAccount struct {
	Pubkey  string `json:"pubkey"`
	Account struct {
		Owner string          `json:"owner"`
		Data  json.RawMessage `json:"data"`
	} `json:"account"`
}

type parsedAccountData struct {
	Program string `json:"program"`
	Parsed  struct {
		Type string `json:"type"`
		Info struct {
			Mint        string `json:"mint"`
			Owner       string `json:"owner"`
			TokenAmount struct {
				Amount   string `json:"amount"`
				Decimals *int   `json:"decimals"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// TokenAccountsByOwner returns the owner's token accounts under programID.
// Entries that are not in parsed form, or whose amount or decimals are
// malformed, are skipped.
func (c *Client) TokenAccountsByOwner(ctx context.Context, owner, programID string) ([]entities.TokenAccountRecord, error) {
	start := time.Now()

	var resp tokenAccountsResponse
	err := c.rpc.CallContext(ctx, &resp, "getTokenAccountsByOwner",
		owner,
		map[string]string{"programId": programID},
		map[string]string{"encoding": "jsonParsed"},
	)
	observability.ObserveUpstream(observability.SourceSolanaRPC, start, err)
	if err != nil {
		return nil, fmt.Errorf("getTokenAccountsByOwner %s: %w", programID, err)
	}

	records := make([]entities.TokenAccountRecord, 0, len(resp.Value))
	for _, keyed := range resp.Value {
		record, ok := parseAccount(keyed, programID)
		if !ok {
			c.logger.Debug("Skipping unparsed token account",
				zap.String("pubkey", keyed.Pubkey),
				zap.String("program_id", programID),
			)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func parseAccount(keyed keyedAccount, programID string) (entities.TokenAccountRecord, bool) {
	var data parsedAccountData
	if err := json.Unmarshal(keyed.Account.Data, &data); err != nil {
		// base64/base58 encodings arrive as arrays
		return entities.TokenAccountRecord{}, false
	}

	info := data.Parsed.Info
	if info.Mint == "" || info.TokenAmount.Decimals == nil || *info.TokenAmount.Decimals < 0 {
		return entities.TokenAccountRecord{}, false
	}

	amount, ok := ParseRawAmount(info.TokenAmount.Amount)
	if !ok {
		return entities.TokenAccountRecord{}, false
	}

	program := keyed.Account.Owner
	if program == "" {
		program = programID
	}

	return entities.TokenAccountRecord{
		Pubkey:    keyed.Pubkey,
		Owner:     info.Owner,
		ProgramID: program,
		Mint:      info.Mint,
		Amount:    amount,
		Decimals:  *info.TokenAmount.Decimals,
	}, true
}
