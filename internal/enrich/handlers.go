package enrich

import (
	"context"
	"fmt"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
)

// cryptoTransferHandler summarizes hbar movement. Amounts are tinybars as
// reported by the mirror; the debit side carries the negative sign.
func cryptoTransferHandler(_ context.Context, _ Env, _ model.Network, tx *model.ParsedTransaction) string {
	var sent float64
	recipients := 0
	for _, t := range tx.Transfers {
		if t.Amount < 0 {
			sent += -t.Amount
		} else if t.Amount > 0 {
			recipients++
		}
	}
	if sent == 0 {
		return "HBAR Transfer completed"
	}
	tx.Details["totalSentTinybars"] = sent
	return fmt.Sprintf("Transferred %.8f ℏ to %d account(s)", sent/1e8, recipients)
}

// tokenCreationHandler resolves the created token's metadata so the receipt
// can name it instead of showing a bare entity id.
func tokenCreationHandler(ctx context.Context, env Env, network model.Network, tx *model.ParsedTransaction) string {
	tokenID, _ := tx.Details["entityId"].(string)
	if tokenID == "" {
		return "Token created"
	}
	tx.Details["createdTokenId"] = tokenID

	info, err := env.TokenInfo(ctx, tokenID, network)
	if err != nil || info == nil {
		return fmt.Sprintf("Token %s created", tokenID)
	}
	tx.Details["tokenName"] = info.Name
	tx.Details["tokenSymbol"] = info.Symbol
	tx.Details["tokenDecimals"] = info.Decimals
	return fmt.Sprintf("Token %s (%s) created as %s", info.Name, info.Symbol, tokenID)
}

// consensusSubmitHandler names the topic the message landed on.
func consensusSubmitHandler(_ context.Context, _ Env, _ model.Network, tx *model.ParsedTransaction) string {
	topicID, _ := tx.Details["entityId"].(string)
	if topicID == "" {
		return "Topic message submitted"
	}
	tx.Details["topicId"] = topicID
	return fmt.Sprintf("Message submitted to topic %s", topicID)
}
