package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karat/bullionledger/internal/domain"
)

// PostingEngine translates business events into consistent registry batches
// plus the matching party balance snapshot deltas. Every operation runs
// inside one database transaction: the caller opens the unit of work through
// Execute and the engine takes FOR UPDATE locks on the party rows it touches,
// so concurrent postings against the same party serialize on the row lock
// rather than racing on read-modify-write.
type PostingEngine struct {
	txManager    TransactionManager
	retrier      Retrier
	registry     RegistryRepository
	parties      PartyRepository
	stock        StockRepository
	cashAccounts CashAccountRepository
	outbox       OutboxRepository
	audit        AuditRepository
	idGen        IDGenerator
	instr        Instrumentation
}

// NewPostingEngine creates a new PostingEngine.
func NewPostingEngine(
	txManager TransactionManager,
	retrier Retrier,
	registry RegistryRepository,
	parties PartyRepository,
	stock StockRepository,
	cashAccounts CashAccountRepository,
	outbox OutboxRepository,
	audit AuditRepository,
	idGen IDGenerator,
	instr Instrumentation,
) *PostingEngine {
	if instr == nil {
		instr = noopInstrumentation{}
	}
	return &PostingEngine{
		txManager:    txManager,
		retrier:      retrier,
		registry:     registry,
		parties:      parties,
		stock:        stock,
		cashAccounts: cashAccounts,
		outbox:       outbox,
		audit:        audit,
		idGen:        idGen,
		instr:        instr,
	}
}

// Execute runs fn inside one all-or-nothing unit of work. Any error rolls
// back every write fn attempted. Deadlocks and serialization failures are
// retried with fresh transactions.
func (e *PostingEngine) Execute(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	attempt := func() error {
		tx, err := e.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(ctx, tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if e.retrier == nil {
		return attempt()
	}
	return e.retrier.Retry(ctx, attempt)
}

// lockParty loads a party FOR UPDATE and checks it exists and is active.
func (e *PostingEngine) lockParty(ctx context.Context, tx Transaction, id string) (*domain.Party, error) {
	party, err := e.parties.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !party.IsActive {
		return nil, domain.ErrInvalidParty
	}
	return party, nil
}

// PostMetalPurchase posts a direct bullion purchase: one gold entry per stock
// line, a making-charges credit if charges were taken and a premium/discount
// entry sign-routed on the premium total. The party's gold position grows by
// pure weight and rate amount; its cash balance in the purchase currency
// moves by charges plus premium. Stock counters record the received metal.
func (e *PostingEngine) PostMetalPurchase(ctx context.Context, tx Transaction, purchase *domain.MetalPurchase, actorID string) ([]*domain.LedgerEntry, error) {
	if purchase.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	party, err := e.lockParty(ctx, tx, purchase.PartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := e.buildPurchasePlan(purchase, now)

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	grams := purchase.TotalPureWeight()
	party.AddGold(grams, purchase.TotalRateAmount(), now)
	party.AddCash(purchase.Currency, purchase.TotalMakingCharges().Add(purchase.TotalPremium()), now)
	party.LastTransactionDate = now
	if err := e.parties.SaveBalances(ctx, tx, party); err != nil {
		return nil, err
	}

	for i := range purchase.StockLines {
		line := &purchase.StockLines[i]
		if err := e.stock.AdjustCounters(ctx, tx, line.StockCode, line.Pieces, line.GrossWeight, now); err != nil {
			return nil, err
		}
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypePurchase, purchase.ID, actorID, false, now); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReverseMetalPurchase writes the algebraic inverse of a purchase posting and
// undoes its balance and counter deltas.
func (e *PostingEngine) ReverseMetalPurchase(ctx context.Context, tx Transaction, purchase *domain.MetalPurchase, actorID, referenceSuffix string) ([]*domain.LedgerEntry, error) {
	party, err := e.lockParty(ctx, tx, purchase.PartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := e.buildPurchasePlan(purchase, now).Reversed(e.idGen.Generate(), referenceSuffix)

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	party.AddGold(purchase.TotalPureWeight().Neg(), purchase.TotalRateAmount().Neg(), now)
	party.GoldBalance.TotalGrams = domain.ClampNonNegative(party.GoldBalance.TotalGrams)
	party.GoldBalance.TotalValue = domain.ClampNonNegative(party.GoldBalance.TotalValue)
	party.AddCash(purchase.Currency, purchase.TotalMakingCharges().Add(purchase.TotalPremium()).Neg(), now)
	if err := e.parties.SaveBalances(ctx, tx, party); err != nil {
		return nil, err
	}

	for i := range purchase.StockLines {
		line := &purchase.StockLines[i]
		if err := e.stock.AdjustCounters(ctx, tx, line.StockCode, -line.Pieces, line.GrossWeight.Neg(), now); err != nil {
			return nil, err
		}
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypePurchase, purchase.ID, actorID, true, now); err != nil {
		return nil, err
	}
	return entries, nil
}

func (e *PostingEngine) buildPurchasePlan(purchase *domain.MetalPurchase, now time.Time) domain.PostingPlan {
	plan := domain.PostingPlan{
		TransactionID:   e.idGen.Generate(),
		SourceID:        purchase.ID,
		TransactionDate: now,
		CreatedBy:       purchase.CreatedBy,
	}

	for i := range purchase.StockLines {
		line := &purchase.StockLines[i]
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeGold,
			Side:        domain.Debit,
			Value:       line.PureWeight,
			Reference:   line.StockCode,
			PartyID:     purchase.PartyID,
			CostCenter:  purchase.CostCenter,
			Description: fmt.Sprintf("Metal purchase %s - %s", purchase.VoucherNo, line.StockCode),
		})
	}

	if making := purchase.TotalMakingCharges(); making.IsPositive() {
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeMakingCharges,
			Side:        domain.Credit,
			Value:       making,
			Reference:   purchase.ID,
			PartyID:     purchase.PartyID,
			CostCenter:  purchase.CostCenter,
			Description: fmt.Sprintf("Making charges %s", purchase.VoucherNo),
		})
	}

	// Premium amount > 0 books a debit, a negative amount is a discount and
	// books a credit of the absolute value.
	if premium := purchase.TotalPremium(); !premium.IsZero() {
		side := domain.Debit
		desc := fmt.Sprintf("Premium %s", purchase.VoucherNo)
		if premium.IsNegative() {
			side = domain.Credit
			desc = fmt.Sprintf("Discount %s", purchase.VoucherNo)
		}
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypePremiumDiscount,
			Side:        side,
			Value:       premium.Abs(),
			Reference:   purchase.ID,
			PartyID:     purchase.PartyID,
			CostCenter:  purchase.CostCenter,
			Description: desc,
		})
	}

	return plan
}

// PostMetalTransaction posts a purchase or sale trading document. Per stock
// line it books gold and stock_balance entries (credit on purchase, debit on
// sale); once per transaction it books the making-charges and premium
// credits, the party_gold_balance counter-entry on the opposite side, and a
// party_cash_balance credit for the session total when positive. The party's
// gold grams grow on purchase and shrink, floored at zero, on sale.
func (e *PostingEngine) PostMetalTransaction(ctx context.Context, tx Transaction, txn *domain.MetalTransaction, actorID string) ([]*domain.LedgerEntry, error) {
	if txn.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	party, err := e.lockParty(ctx, tx, txn.PartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := e.buildTransactionPlan(txn, now)

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	if err := e.applyTransactionBalance(ctx, tx, party, txn, false, now); err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeTransaction, txn.ID, actorID, false, now); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReverseMetalTransaction mirrors PostMetalTransaction with every side
// flipped and the balance delta inverted. Used on soft delete and to replace
// old postings before applying updated ones on edit.
func (e *PostingEngine) ReverseMetalTransaction(ctx context.Context, tx Transaction, txn *domain.MetalTransaction, actorID, referenceSuffix string) ([]*domain.LedgerEntry, error) {
	party, err := e.lockParty(ctx, tx, txn.PartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := e.buildTransactionPlan(txn, now).Reversed(e.idGen.Generate(), referenceSuffix)

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	if err := e.applyTransactionBalance(ctx, tx, party, txn, true, now); err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeTransaction, txn.ID, actorID, true, now); err != nil {
		return nil, err
	}
	return entries, nil
}

func (e *PostingEngine) applyTransactionBalance(ctx context.Context, tx Transaction, party *domain.Party, txn *domain.MetalTransaction, reversed bool, now time.Time) error {
	grams := txn.TotalPureWeight()
	increase := txn.TransactionType == domain.TransactionTypePurchase
	if reversed {
		increase = !increase
	}
	if increase {
		party.AddGold(grams, decimal.Zero, now)
	} else {
		party.SubtractGoldClamped(grams, now)
	}
	party.LastTransactionDate = now
	return e.parties.SaveBalances(ctx, tx, party)
}

func (e *PostingEngine) buildTransactionPlan(txn *domain.MetalTransaction, now time.Time) domain.PostingPlan {
	plan := domain.PostingPlan{
		TransactionID:   e.idGen.Generate(),
		SourceID:        txn.ID,
		TransactionDate: now,
		CreatedBy:       txn.CreatedBy,
	}

	// Gold leaving stock is a debit, gold entering stock a credit; the party
	// side books the opposite because the party is the counterparty.
	itemSide := domain.Credit
	if txn.TransactionType == domain.TransactionTypeSale {
		itemSide = domain.Debit
	}

	for i := range txn.StockLines {
		line := &txn.StockLines[i]
		desc := fmt.Sprintf("Metal %s %s - %s", txn.TransactionType, txn.VoucherNo, line.StockCode)
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeGold,
			Side:        itemSide,
			Value:       line.PureWeight,
			Reference:   line.StockCode,
			PartyID:     txn.PartyID,
			CostCenter:  txn.CostCenter,
			Description: desc,
		})
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeStockBalance,
			Side:        itemSide,
			Value:       line.PureWeight,
			Reference:   line.StockCode,
			PartyID:     txn.PartyID,
			CostCenter:  txn.CostCenter,
			Description: desc,
		})
	}

	if making := txn.TotalMakingCharges(); making.IsPositive() {
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeMakingCharges,
			Side:        domain.Credit,
			Value:       making,
			Reference:   txn.ID,
			PartyID:     txn.PartyID,
			CostCenter:  txn.CostCenter,
			Description: fmt.Sprintf("Making charges %s", txn.VoucherNo),
		})
	}

	if premium := txn.TotalPremium(); !premium.IsZero() {
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypePremium,
			Side:        domain.Credit,
			Value:       premium.Abs(),
			Reference:   txn.ID,
			PartyID:     txn.PartyID,
			CostCenter:  txn.CostCenter,
			Description: fmt.Sprintf("Premium %s", txn.VoucherNo),
		})
	}

	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypePartyGoldBalance,
		Side:        itemSide.Opposite(),
		Value:       txn.TotalPureWeight(),
		Reference:   txn.ID,
		PartyID:     txn.PartyID,
		CostCenter:  txn.CostCenter,
		Description: fmt.Sprintf("Party gold balance %s", txn.VoucherNo),
	})

	if txn.Totals.TotalAmount.IsPositive() {
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypePartyCashBalance,
			Side:        domain.Credit,
			Value:       txn.Totals.TotalAmount,
			Reference:   txn.ID,
			PartyID:     txn.PartyID,
			CostCenter:  txn.CostCenter,
			Description: fmt.Sprintf("Session total %s", txn.VoucherNo),
		})
	}

	return plan
}

// PostCashReceipt posts a cash receipt voucher. Receiving in a currency the
// party has never held is an error; this is asymmetric with PostCashPayment
// on purpose (flagged for product confirmation, not unified).
func (e *PostingEngine) PostCashReceipt(ctx context.Context, tx Transaction, voucher *domain.Voucher, actorID string) ([]*domain.LedgerEntry, error) {
	return e.postCashVoucher(ctx, tx, voucher, actorID, true, false, "")
}

// PostCashPayment posts a cash payment voucher, auto-creating a zero balance
// row for currencies the party has not held before.
func (e *PostingEngine) PostCashPayment(ctx context.Context, tx Transaction, voucher *domain.Voucher, actorID string) ([]*domain.LedgerEntry, error) {
	return e.postCashVoucher(ctx, tx, voucher, actorID, false, false, "")
}

// ReverseVoucher writes the algebraic inverse of a voucher posting and undoes
// its cash-account or stock counter deltas. Used on soft delete.
func (e *PostingEngine) ReverseVoucher(ctx context.Context, tx Transaction, voucher *domain.Voucher, actorID, referenceSuffix string) ([]*domain.LedgerEntry, error) {
	switch voucher.Type {
	case domain.VoucherCashReceipt:
		return e.postCashVoucher(ctx, tx, voucher, actorID, true, true, referenceSuffix)
	case domain.VoucherCashPayment:
		return e.postCashVoucher(ctx, tx, voucher, actorID, false, true, referenceSuffix)
	case domain.VoucherMetalReceipt:
		return e.postMetalVoucher(ctx, tx, voucher, actorID, true, true, referenceSuffix)
	case domain.VoucherMetalPayment:
		return e.postMetalVoucher(ctx, tx, voucher, actorID, false, true, referenceSuffix)
	}
	return nil, domain.ErrInvalidAssetType
}

func (e *PostingEngine) postCashVoucher(ctx context.Context, tx Transaction, voucher *domain.Voucher, actorID string, receipt, reversed bool, referenceSuffix string) ([]*domain.LedgerEntry, error) {
	if !reversed && voucher.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	party, err := e.lockParty(ctx, tx, voucher.PartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := domain.PostingPlan{
		TransactionID:   e.idGen.Generate(),
		SourceID:        voucher.ID,
		TransactionDate: now,
		CreatedBy:       voucher.CreatedBy,
	}

	kind := "receipt"
	if !receipt {
		kind = "payment"
	}

	// Reversing a receipt moves the balances the way a payment does, and the
	// other way round. The plan keeps the original sides and is flipped as a
	// whole below.
	withdraw := receipt != reversed

	for i := range voucher.CashLines {
		line := &voucher.CashLines[i]

		if withdraw {
			cb := party.CashBalanceFor(line.Currency)
			if cb == nil {
				return nil, domain.ErrCurrencyBalanceMissing
			}
			// The business receives; what is owed to the party shrinks.
			cb.Amount = cb.Amount.Sub(line.Amount)
			cb.LastUpdated = now
		} else {
			party.AddCash(line.Currency, line.Amount, now)
		}

		partySide, cashSide := domain.Debit, domain.Credit
		if receipt {
			partySide, cashSide = domain.Credit, domain.Debit
		}

		desc := fmt.Sprintf("Cash %s %s - %s", kind, voucher.VoucherNo, line.Currency)
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypePartyCashBook,
			Side:        partySide,
			Value:       line.Amount,
			Reference:   voucher.ID,
			PartyID:     voucher.PartyID,
			Description: desc,
		})
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeCashBook,
			Side:        cashSide,
			Value:       line.Amount,
			Reference:   voucher.ID,
			PartyID:     voucher.PartyID,
			Description: desc,
		})

		delta := line.Amount
		if !withdraw {
			delta = delta.Neg()
		}
		if err := e.cashAccounts.AdjustOpeningBalance(ctx, tx, line.CashAccountID, delta, now); err != nil {
			return nil, err
		}
	}

	if reversed {
		plan = plan.Reversed(e.idGen.Generate(), referenceSuffix)
	}

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	party.RecalcOutstanding()
	party.LastBalanceUpdate = now
	if err := e.parties.SaveBalances(ctx, tx, party); err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeVoucher, voucher.ID, actorID, reversed, now); err != nil {
		return nil, err
	}
	return entries, nil
}

// PostMetalReceipt posts a metal receipt voucher: per stock line a
// STOCK_BALANCE credit and a GOLD debit keyed off purity weight.
func (e *PostingEngine) PostMetalReceipt(ctx context.Context, tx Transaction, voucher *domain.Voucher, actorID string) ([]*domain.LedgerEntry, error) {
	return e.postMetalVoucher(ctx, tx, voucher, actorID, true, false, "")
}

// PostMetalPayment posts a metal payment voucher: the mirror of
// PostMetalReceipt.
func (e *PostingEngine) PostMetalPayment(ctx context.Context, tx Transaction, voucher *domain.Voucher, actorID string) ([]*domain.LedgerEntry, error) {
	return e.postMetalVoucher(ctx, tx, voucher, actorID, false, false, "")
}

func (e *PostingEngine) postMetalVoucher(ctx context.Context, tx Transaction, voucher *domain.Voucher, actorID string, receipt, reversed bool, referenceSuffix string) ([]*domain.LedgerEntry, error) {
	if !reversed && voucher.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	if _, err := e.lockParty(ctx, tx, voucher.PartyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := domain.PostingPlan{
		TransactionID:   e.idGen.Generate(),
		SourceID:        voucher.ID,
		TransactionDate: now,
		CreatedBy:       voucher.CreatedBy,
	}

	kind := "receipt"
	stockSide, goldSide := domain.Credit, domain.Debit
	if !receipt {
		kind = "payment"
		stockSide, goldSide = domain.Debit, domain.Credit
	}

	for i := range voucher.MetalLines {
		line := &voucher.MetalLines[i]
		desc := fmt.Sprintf("Metal %s %s - %s", kind, voucher.VoucherNo, line.StockCode)
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeStockBook,
			Side:        stockSide,
			Value:       line.PurityWeight,
			Reference:   line.StockCode,
			PartyID:     voucher.PartyID,
			Description: desc,
		})
		plan.Add(domain.PlannedLine{
			Type:        domain.EntryTypeGoldBook,
			Side:        goldSide,
			Value:       line.PurityWeight,
			Reference:   line.StockCode,
			PartyID:     voucher.PartyID,
			Description: desc,
		})

		weight := line.GrossWeight
		if receipt == reversed {
			weight = weight.Neg()
		}
		if err := e.stock.AdjustCounters(ctx, tx, line.StockCode, 0, weight, now); err != nil {
			return nil, err
		}
	}

	if reversed {
		plan = plan.Reversed(e.idGen.Generate(), referenceSuffix)
	}

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeVoucher, voucher.ID, actorID, reversed, now); err != nil {
		return nil, err
	}
	return entries, nil
}

// PostFundTransfer moves cash or gold between two party accounts. Both
// account rows are locked in sorted-ID order before any balance read. The
// sender must cover the value; there is no overdraft on transfers.
func (e *PostingEngine) PostFundTransfer(ctx context.Context, tx Transaction, transfer *domain.FundTransfer, actorID string) ([]*domain.LedgerEntry, error) {
	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	ids := []string{transfer.SenderID, transfer.ReceiverID}
	sort.Strings(ids)
	accounts, err := e.parties.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var sender, receiver *domain.Party
	for _, p := range accounts {
		switch p.ID {
		case transfer.SenderID:
			sender = p
		case transfer.ReceiverID:
			receiver = p
		}
	}
	if sender == nil || receiver == nil {
		return nil, domain.ErrAccountNotFound
	}

	now := time.Now().UTC()
	entryType := domain.EntryTypePartyCash

	switch transfer.AssetType {
	case domain.AssetCash:
		currency := transfer.Currency
		if currency == "" {
			currency = sender.Currency
		}
		cb := sender.CashBalanceFor(currency)
		if cb == nil || cb.Amount.LessThan(transfer.Value) {
			return nil, domain.ErrInsufficientBalance
		}
		cb.Amount = cb.Amount.Sub(transfer.Value)
		cb.LastUpdated = now
		sender.RecalcOutstanding()
		sender.LastBalanceUpdate = now
		receiver.AddCash(currency, transfer.Value, now)
	case domain.AssetGold:
		entryType = domain.EntryTypePartyGoldBook
		if sender.GoldBalance.TotalGrams.LessThan(transfer.Value) {
			return nil, domain.ErrInsufficientBalance
		}
		sender.AddGold(transfer.Value.Neg(), decimal.Zero, now)
		receiver.AddGold(transfer.Value, decimal.Zero, now)
	}

	plan := domain.PostingPlan{
		TransactionID:   e.idGen.Generate(),
		SourceID:        transfer.ID,
		TransactionDate: now,
		CreatedBy:       actorID,
	}
	desc := fmt.Sprintf("Fund transfer %s %s", transfer.AssetType, transfer.ID)
	plan.Add(domain.PlannedLine{
		Type:        entryType,
		Side:        domain.Debit,
		Value:       transfer.Value,
		Reference:   transfer.ID,
		PartyID:     transfer.SenderID,
		Description: desc,
	})
	plan.Add(domain.PlannedLine{
		Type:        entryType,
		Side:        domain.Credit,
		Value:       transfer.Value,
		Reference:   transfer.ID,
		PartyID:     transfer.ReceiverID,
		Description: desc,
	})

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	if err := e.parties.SaveBalances(ctx, tx, sender); err != nil {
		return nil, err
	}
	if err := e.parties.SaveBalances(ctx, tx, receiver); err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeTransfer, transfer.ID, actorID, false, now); err != nil {
		return nil, err
	}
	return entries, nil
}

// PostOpeningBalanceTransfer seeds the ledger with an opening cash balance on
// the receiver. There is no sender side.
func (e *PostingEngine) PostOpeningBalanceTransfer(ctx context.Context, tx Transaction, receiverID string, value decimal.Decimal, actorID string) ([]*domain.LedgerEntry, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	receiver, err := e.parties.GetByIDForUpdate(ctx, tx, receiverID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	receiver.AddCash(receiver.Currency, value, now)

	plan := domain.PostingPlan{
		TransactionID:   e.idGen.Generate(),
		SourceID:        receiverID,
		TransactionDate: now,
		CreatedBy:       actorID,
	}
	desc := fmt.Sprintf("Opening balance %s", receiverID)
	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypePartyCashBook,
		Side:        domain.Credit,
		Value:       value,
		Reference:   receiverID,
		PartyID:     receiverID,
		Description: desc,
	})
	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypeOpening,
		Side:        domain.Credit,
		Value:       value,
		Reference:   receiverID,
		PartyID:     receiverID,
		Description: desc,
	})

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	if err := e.parties.SaveBalances(ctx, tx, receiver); err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeParty, receiverID, actorID, false, now); err != nil {
		return nil, err
	}
	return entries, nil
}

// PostFixing settles a fixed metal position against a party. A purchase
// fixing hands gold to the party: stock and gold books are debited, the
// party gold book credited, and the gold position drops (floored at zero).
// A sell fixing is the exact mirror. This is deliberately the inverse of the
// metal transaction convention; the two must not be merged.
func (e *PostingEngine) PostFixing(ctx context.Context, tx Transaction, fixing *domain.Fixing, actorID string) ([]*domain.LedgerEntry, error) {
	if fixing.Status == domain.StatusCancelled {
		return nil, domain.ErrTransactionCancelled
	}

	party, err := e.lockParty(ctx, tx, fixing.PartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := e.buildFixingPlan(fixing, now)

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	if err := e.applyFixingBalance(ctx, tx, party, fixing, false, now); err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeFixing, fixing.ID, actorID, false, now); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReverseFixing writes the inverse batch of a fixing posting and undoes its
// balance delta.
func (e *PostingEngine) ReverseFixing(ctx context.Context, tx Transaction, fixing *domain.Fixing, actorID, referenceSuffix string) ([]*domain.LedgerEntry, error) {
	party, err := e.lockParty(ctx, tx, fixing.PartyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := e.buildFixingPlan(fixing, now).Reversed(e.idGen.Generate(), referenceSuffix)

	entries, err := e.writePlan(ctx, tx, plan, now)
	if err != nil {
		return nil, err
	}

	if err := e.applyFixingBalance(ctx, tx, party, fixing, true, now); err != nil {
		return nil, err
	}

	if err := e.finish(ctx, tx, plan, domain.AggregateTypeFixing, fixing.ID, actorID, true, now); err != nil {
		return nil, err
	}
	return entries, nil
}

func (e *PostingEngine) applyFixingBalance(ctx context.Context, tx Transaction, party *domain.Party, fixing *domain.Fixing, reversed bool, now time.Time) error {
	decrease := fixing.Type == domain.FixingTypePurchase
	if reversed {
		decrease = !decrease
	}
	if decrease {
		party.SubtractGoldClamped(fixing.Quantity, now)
	} else {
		party.AddGold(fixing.Quantity, decimal.Zero, now)
	}
	return e.parties.SaveBalances(ctx, tx, party)
}

func (e *PostingEngine) buildFixingPlan(fixing *domain.Fixing, now time.Time) domain.PostingPlan {
	plan := domain.PostingPlan{
		TransactionID:   e.idGen.Generate(),
		SourceID:        fixing.ID,
		TransactionDate: now,
		CreatedBy:       fixing.CreatedBy,
	}

	stockSide := domain.Debit
	if fixing.Type == domain.FixingTypeSell {
		stockSide = domain.Credit
	}

	desc := fmt.Sprintf("Fixing %s %s", fixing.Type, fixing.VoucherNo)
	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypeStockBook,
		Side:        stockSide,
		Value:       fixing.Quantity,
		Reference:   fixing.ID,
		PartyID:     fixing.PartyID,
		Description: desc,
	})
	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypeGoldBook,
		Side:        stockSide,
		Value:       fixing.Quantity,
		Reference:   fixing.ID,
		PartyID:     fixing.PartyID,
		Description: desc,
	})
	plan.Add(domain.PlannedLine{
		Type:        domain.EntryTypePartyGoldBook,
		Side:        stockSide.Opposite(),
		Value:       fixing.Quantity,
		Reference:   fixing.ID,
		PartyID:     fixing.PartyID,
		Description: desc,
	})

	return plan
}

// writePlan materialises and persists a plan's entries.
func (e *PostingEngine) writePlan(ctx context.Context, tx Transaction, plan domain.PostingPlan, now time.Time) ([]*domain.LedgerEntry, error) {
	entries := plan.Entries(e.idGen.Generate, now)
	if err := e.registry.CreateBatch(ctx, tx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// finish writes the outbox event and audit record for a completed posting,
// still inside the unit of work, and bumps the counters.
func (e *PostingEngine) finish(ctx context.Context, tx Transaction, plan domain.PostingPlan, aggregateType, aggregateID, actorID string, reversal bool, now time.Time) error {
	eventType := domain.EventTypePostingCreated
	action := domain.AuditActionPost
	if reversal {
		eventType = domain.EventTypePostingReversed
		action = domain.AuditActionReverse
	}

	if e.outbox != nil {
		event := &domain.OutboxEvent{
			ID:            e.idGen.Generate(),
			AggregateID:   aggregateID,
			AggregateType: aggregateType,
			EventType:     eventType,
			Payload: map[string]any{
				"transaction_id": plan.TransactionID,
				"aggregate_id":   aggregateID,
				"entry_count":    len(plan.Lines),
				"actor_id":       actorID,
			},
			CreatedAt: now,
		}
		if err := e.outbox.Create(ctx, tx, event); err != nil {
			return err
		}
	}

	if e.audit != nil {
		log := &domain.AuditLog{
			ID:           e.idGen.Generate(),
			ActorID:      actorID,
			Action:       action,
			ResourceType: aggregateType,
			ResourceID:   aggregateID,
			Status:       domain.AuditStatusSuccess,
			CreatedAt:    now,
		}
		if err := e.audit.CreateTx(ctx, tx, log); err != nil {
			return err
		}
	}

	if reversal {
		e.instr.ReversalRecorded(aggregateType)
	} else {
		e.instr.PostingRecorded(aggregateType, len(plan.Lines))
	}
	return nil
}

type noopInstrumentation struct{}

func (noopInstrumentation) PostingRecorded(string, int) {}
func (noopInstrumentation) ReversalRecorded(string)     {}
