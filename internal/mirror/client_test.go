package mirror

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		MainnetBaseURL: srv.URL,
		TestnetBaseURL: srv.URL,
		RPS:            1000,
		Burst:          1000,
	}, slog.Default())
}

func TestGetScheduleInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/schedules/0.0.999", r.URL.Path)
		w.Write([]byte(`{
			"schedule_id": "0.0.999",
			"transaction_body": "CgYIABAAGgA=",
			"memo": "pay rent",
			"executed_timestamp": null,
			"deleted": false
		}`))
	})

	info, err := client.GetScheduleInfo(context.Background(), "0.0.999", model.NetworkTestnet)
	require.NoError(t, err)
	assert.Equal(t, "0.0.999", info.ScheduleID)
	assert.Equal(t, "CgYIABAAGgA=", info.TransactionBody)
	assert.Equal(t, "pay rent", info.Memo)
	assert.False(t, info.Executed())
}

func TestGetScheduledTransactionStatus_Executed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"schedule_id":"0.0.999","executed_timestamp":"1700000100.000000000"}`))
	})

	status, err := client.GetScheduledTransactionStatus(context.Background(), "0.0.999", model.NetworkTestnet)
	require.NoError(t, err)
	assert.True(t, status.Executed)
	require.NotNil(t, status.ExecutedTimestamp)
	assert.Equal(t, "1700000100.000000000", *status.ExecutedTimestamp)
}

func TestGetTransaction_FirstRecordWins(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transactions/0.0.5-1700000000-123456789", r.URL.Path)
		w.Write([]byte(`{"transactions":[
			{"transaction_id":"0.0.5-1700000000-123456789","name":"CRYPTOTRANSFER","result":"SUCCESS",
			 "charged_tx_fee": 183926,
			 "transfers":[{"account":"0.0.5","amount":-100},{"account":"0.0.8","amount":100}]},
			{"transaction_id":"dup","name":"CRYPTOTRANSFER","result":"DUPLICATE_TRANSACTION"}
		]}`))
	})

	tx, err := client.GetTransaction(context.Background(), "0.0.5-1700000000-123456789", model.NetworkMainnet)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, "CRYPTOTRANSFER", tx.Name)
	assert.Equal(t, "SUCCESS", tx.Result)
	assert.Len(t, tx.Transfers, 2)
}

func TestGetTransaction_NotFoundIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	tx, err := client.GetTransaction(context.Background(), "0.0.5-1-1", model.NetworkTestnet)
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestGetTokenInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tokens/0.0.4242", r.URL.Path)
		w.Write([]byte(`{"token_id":"0.0.4242","name":"Demo","symbol":"DMO","decimals":"8","type":"FUNGIBLE_COMMON"}`))
	})

	info, err := client.GetTokenInfo(context.Background(), "0.0.4242", model.NetworkTestnet)
	require.NoError(t, err)
	assert.Equal(t, "DMO", info.Symbol)
	assert.Equal(t, "8", info.Decimals)
}

func TestGet_ServerErrorSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetScheduleInfo(context.Background(), "0.0.1", model.NetworkTestnet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGet_UnknownNetwork(t *testing.T) {
	client := NewClient(Config{TestnetBaseURL: "http://localhost:1"}, slog.Default())
	_, err := client.GetScheduleInfo(context.Background(), "0.0.1", model.Network("previewnet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mirror base url")
}
