package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/peaks-ai/peaks-backend/config"
	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultOracleEndpoint = "https://replitback.created.app/api/claude-chat"

// oracleRequest is the wire shape the completion endpoint accepts.
type oracleRequest struct {
	Message string `json:"message"`
}

// oracleResponse is the wire shape the completion endpoint returns.
type oracleResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

// OracleClient talks to the external text-generation endpoint. It does not
// retry remote-reported failures and does not validate the returned text as
// JSON; call sites that need JSON parse it themselves and apply their own
// fallback.
type OracleClient struct {
	endpoint   string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     zerolog.Logger
}

// NewOracleClient builds a client from config. ORACLE_URL overrides the
// endpoint; ORACLE_TIMEOUT_SECONDS bounds each round trip (default 60s);
// ORACLE_MAX_RETRIES bounds retries on transport-level failures (default 2).
func NewOracleClient(cfg map[string]string) *OracleClient {
	return &OracleClient{
		endpoint: config.GetString(cfg, "ORACLE_URL", defaultOracleEndpoint),
		httpClient: &http.Client{
			Timeout: config.GetSeconds(cfg, "ORACLE_TIMEOUT_SECONDS", 60*time.Second),
		},
		maxRetries: config.GetInt(cfg, "ORACLE_MAX_RETRIES", 2),
		backoff:    config.GetSeconds(cfg, "ORACLE_RETRY_BACKOFF_SECONDS", 1*time.Second),
		logger:     log.With().Str("serviceName", "oracleClient").Logger(),
	}
}

// Complete sends a prompt and returns the raw completion text. Failure modes:
// network failure -> ErrOracleUnavailable, non-2xx status -> ErrOracleTransport,
// success=false body -> ErrOracleRemote, unparseable 2xx body ->
// ErrOracleMalformedResponse. Transport and network failures are retried with
// doubling backoff; remote-reported failures and malformed bodies are not,
// since in both cases the oracle already answered.
func (c *OracleClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn().
				Int("attempt", attempt).
				Err(lastErr).
				Msg("Retrying oracle call")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", errs.NewOracleUnavailableError(ctx.Err())
			}
			backoff *= 2
		}

		text, err := c.completeOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if errs.IsOracleRemoteError(err) || errs.IsOracleMalformedResponseError(err) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", errs.NewOracleUnavailableError(ctx.Err())
		}
	}

	return "", lastErr
}

func (c *OracleClient) completeOnce(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(oracleRequest{Message: prompt})
	if err != nil {
		return "", errs.NewInternalError("failed to marshal oracle request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", errs.NewInternalError("failed to build oracle request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.NewOracleUnavailableError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewOracleUnavailableError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Msg("Oracle endpoint returned non-2xx status")
		return "", errs.NewOracleTransportError(resp.StatusCode)
	}

	var oracleResp oracleResponse
	if err := json.Unmarshal(bodyBytes, &oracleResp); err != nil {
		return "", errs.NewOracleMalformedResponseError(err)
	}

	if !oracleResp.Success {
		remoteMsg := oracleResp.Error
		if remoteMsg == "" {
			remoteMsg = "Unknown error from generation service"
		}
		return "", errs.NewOracleRemoteError(remoteMsg)
	}

	return oracleResp.Response, nil
}
