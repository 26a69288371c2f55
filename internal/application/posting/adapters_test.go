package posting_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/omplast/stores-api/internal/application/posting"
	"github.com/omplast/stores-api/internal/domain/entity"
	domposting "github.com/omplast/stores-api/internal/domain/posting"
)

// ──────────────────────────────────────────────────────────────────────────────
// GRN adapter
// ──────────────────────────────────────────────────────────────────────────────

func TestGRNAdapter_FreeTextLinePostsUnderDescription(t *testing.T) {
	s := newMemStore()
	s.grnLines["GRN-200"] = []*entity.GRNLine{
		{LineNo: 1, ItemCode: "", Description: "Misc hardware", Quantity: qty(12)},
	}
	adapter := posting.NewGRNAdapter(&memDocRepo{s})

	res, err := adapter.Expand(context.Background(), "GRN-200")
	require.NoError(t, err)
	require.Len(t, res.Requests, 1)
	assert.Equal(t, "Misc hardware", res.Requests[0].ItemCode,
		"an uncataloged receipt still enters the store under its description")
	assert.Equal(t, entity.DirectionIN, res.Requests[0].Direction)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no item code")
}

func TestGRNAdapter_NegativeQuantityFails(t *testing.T) {
	s := newMemStore()
	s.grnLines["GRN-201"] = []*entity.GRNLine{
		{LineNo: 1, ItemCode: "RM-PVC-01", Description: "PVC resin", Quantity: qty(-3)},
	}
	adapter := posting.NewGRNAdapter(&memDocRepo{s})

	_, err := adapter.Expand(context.Background(), "GRN-201")
	var validation *domposting.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "negative quantity")
}

// ──────────────────────────────────────────────────────────────────────────────
// MIS adapter
// ──────────────────────────────────────────────────────────────────────────────

func TestMISAdapter_StrictFailsOnUnmatchedLine(t *testing.T) {
	s := newMemStore()
	s.misLines["MIS-200"] = []*entity.MISLine{
		{LineNo: 1, ItemCode: "", Description: "cotton waste", IssueQty: qty(5)},
	}
	adapter := posting.NewMISAdapter(&memDocRepo{s}, posting.Strict)

	_, err := adapter.Expand(context.Background(), "MIS-200")
	var validation *domposting.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "cotton waste")
}

func TestMISAdapter_ZeroQuantityLineSkipped(t *testing.T) {
	s := newMemStore()
	s.misLines["MIS-201"] = []*entity.MISLine{
		{LineNo: 1, ItemCode: "RM-PVC-01", IssueQty: qty(0)},
		{LineNo: 2, ItemCode: "RM-CAL-02", IssueQty: qty(25)},
	}
	adapter := posting.NewMISAdapter(&memDocRepo{s}, posting.Lenient)

	res, err := adapter.Expand(context.Background(), "MIS-201")
	require.NoError(t, err)
	require.Len(t, res.Requests, 1)
	assert.Equal(t, "RM-CAL-02", res.Requests[0].ItemCode)
	assert.Empty(t, res.Warnings, "a zero line is routine padding, not worth a warning")
}

// ──────────────────────────────────────────────────────────────────────────────
// Outbound adapters (dispatch and job work)
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatchAdapter_LenientSkipsUnknownItem(t *testing.T) {
	s := newMemStore()
	s.items["FG-RED-24"] = &entity.StockItem{ItemCode: "FG-RED-24", ItemType: entity.ItemTypeFG, UOM: "PCS"}
	s.outLines[docKey(entity.DocTypeDispatch, "DC-300")] = []*entity.OutboundLine{
		{LineNo: 1, ItemCode: "FG-RED-24", Quantity: qty(100)},
		{LineNo: 2, ItemCode: "SAMPLE-X", Description: "sample pieces", Quantity: qty(4)},
	}
	adapter := posting.NewDispatchAdapter(&memDocRepo{s}, &memItemRepo{s}, posting.Lenient)

	res, err := adapter.Expand(context.Background(), "DC-300")
	require.NoError(t, err)
	require.Len(t, res.Requests, 1)
	assert.Equal(t, "FG-RED-24", res.Requests[0].ItemCode)
	assert.Equal(t, entity.DirectionOUT, res.Requests[0].Direction)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "SAMPLE-X")
}

func TestJobWorkAdapter_StrictFailsOnUnknownItem(t *testing.T) {
	s := newMemStore()
	s.outLines[docKey(entity.DocTypeJobWork, "JW-300")] = []*entity.OutboundLine{
		{LineNo: 1, ItemCode: "SFG-NOPE", Quantity: qty(10)},
	}
	adapter := posting.NewJobWorkAdapter(&memDocRepo{s}, &memItemRepo{s}, posting.Strict)

	_, err := adapter.Expand(context.Background(), "JW-300")
	var validation *domposting.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "not in item master")
}

// ──────────────────────────────────────────────────────────────────────────────
// FGN adapter
// ──────────────────────────────────────────────────────────────────────────────

func TestFGNAdapter_MissingBOMWarns(t *testing.T) {
	s := newMemStore()
	s.fgnLines["FGN-200"] = []*entity.FGNLine{
		{LineNo: 1, FGCode: "FG-NEW-12", QtyBoxes: qty(5), PackSize: qty(12)},
	}
	adapter := posting.NewFGNAdapter(&memDocRepo{s}, &memBOMRepo{s})

	res, err := adapter.Expand(context.Background(), "FGN-200")
	require.NoError(t, err)
	// The finished good still comes IN; there is just nothing to consume.
	require.Len(t, res.Requests, 1)
	assert.Equal(t, entity.DirectionIN, res.Requests[0].Direction)
	assert.True(t, qty(60).Equal(res.Requests[0].Quantity))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no BOM configured")
}

func TestFGNAdapter_TonnageFromSFGWeights(t *testing.T) {
	s := newMemStore()
	s.boms["FG-RED-24"] = []*entity.BOMComponent{
		// 5 bodies of 400 g and 5 lids of 100 g per box: 2500 g per box.
		{FGCode: "FG-RED-24", ComponentCode: "SFG-RED", Role: entity.ComponentRoleSFG1, QtyPerUnit: qty(5), UnitWeight: qty(400)},
		{FGCode: "FG-RED-24", ComponentCode: "SFG-LID", Role: entity.ComponentRoleSFG2, QtyPerUnit: qty(5), UnitWeight: qty(100)},
		{FGCode: "FG-RED-24", ComponentCode: "PM-CTN-05", Role: entity.ComponentRoleContainer, QtyPerUnit: qty(1), UnitWeight: qty(500)},
	}
	s.fgnLines["FGN-201"] = []*entity.FGNLine{
		{LineNo: 1, FGCode: "FG-RED-24", QtyBoxes: qty(400), PackSize: qty(24)},
	}
	adapter := posting.NewFGNAdapter(&memDocRepo{s}, &memBOMRepo{s})

	res, err := adapter.Expand(context.Background(), "FGN-201")
	require.NoError(t, err)
	// 2500 g x 400 boxes = 1,000,000 g = 1 tonne; carton weight is excluded.
	assert.True(t, decimal.NewFromInt(1).Equal(res.TonnageTon),
		"tonnage counts SFG weights only, got %s", res.TonnageTon)
}

func TestFGNAdapter_ZeroBoxLineSkipped(t *testing.T) {
	s := newMemStore()
	s.boms["FG-RED-24"] = []*entity.BOMComponent{
		{FGCode: "FG-RED-24", ComponentCode: "SFG-RED", Role: entity.ComponentRoleSFG1, QtyPerUnit: qty(5), UnitWeight: qty(400)},
	}
	s.fgnLines["FGN-202"] = []*entity.FGNLine{
		{LineNo: 1, FGCode: "FG-RED-24", QtyBoxes: qty(0), PackSize: qty(24)},
	}
	adapter := posting.NewFGNAdapter(&memDocRepo{s}, &memBOMRepo{s})

	res, err := adapter.Expand(context.Background(), "FGN-202")
	require.NoError(t, err)
	assert.Empty(t, res.Requests)
	assert.True(t, res.TonnageTon.IsZero())
}
