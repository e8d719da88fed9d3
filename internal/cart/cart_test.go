package cart

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"framex/internal/catalog"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewService(context.Background(), store, zap.NewNop()), store
}

func testFrame() *catalog.Moulding {
	return &catalog.Moulding{ID: "f1", Code: "BLK-22", Name: "Matte Black", CornerImage: "corner.jpg"}
}

func TestNewItemDerivesProfit(t *testing.T) {
	it := NewItem(ItemParams{
		ProductType:  "Photo Frame",
		Size:         "4x6",
		FrameSize:    "6x8",
		Frame:        testFrame(),
		CostPrice:    100,
		SellingPrice: 180,
	})
	if it.Profit != 80 {
		t.Errorf("profit = %v, want 80", it.Profit)
	}
	if it.Quantity != 1 {
		t.Errorf("quantity default = %d, want 1", it.Quantity)
	}
	if it.Moulding != "BLK-22" {
		t.Errorf("moulding = %q, want frame code", it.Moulding)
	}
	if it.ID == "" {
		t.Error("line id not assigned")
	}
}

func TestEmptyFrameItem(t *testing.T) {
	it := NewEmptyFrameItem("6x8", testFrame(), 200, 360, 4)
	if it.ProductType != ProductTypeEmptyFrame {
		t.Errorf("productType = %q", it.ProductType)
	}
	if it.Size != "" || it.Image != "" {
		t.Errorf("empty frame must carry no photo fields: %+v", it)
	}
	if it.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", it.Quantity)
	}
	if it.Thumb != "corner.jpg" {
		t.Errorf("thumb = %q, want moulding corner image", it.Thumb)
	}
}

func TestItemJSONRoundTrip(t *testing.T) {
	it := NewItem(ItemParams{
		ProductType:  "Photo Frame",
		Size:         "4x6",
		FrameSize:    "6x8",
		Materials:    []Material{{Name: "Glass", Variant: "2mm"}},
		Frame:        testFrame(),
		Image:        "https://cdn/img.jpg",
		Thumb:        "https://cdn/img.jpg",
		CostPrice:    100,
		SellingPrice: 180,
	})

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// the wire form carries the moulding code, never the internal id
	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal wire: %v", err)
	}
	if wire["moulding"] != "BLK-22" {
		t.Errorf("wire moulding = %v, want code string", wire["moulding"])
	}

	back, err := ItemFromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	// the frame field round-trips as the serialized code string
	if back.Moulding != "BLK-22" {
		t.Errorf("round-tripped moulding = %q", back.Moulding)
	}
	if back.SellingPrice != 180 || back.Quantity != 1 {
		t.Errorf("round trip lost fields: %+v", back)
	}
}

func TestBuildMaterials(t *testing.T) {
	mats := []catalog.Material{
		{ID: "m1", Name: "Glass", Variants: []catalog.Variant{
			{ID: "g1", Thickness: "2mm"},
			{ID: "g2", Thickness: "5mm"},
		}},
		{ID: "m2", Name: "Hanging Hardware", Variants: []catalog.Variant{
			{ID: "h1", Thickness: "", Unit: "per item"},
		}},
		{ID: "m3", Name: "Mystery"},
	}
	selected := map[string]string{"m1": "g2"}

	out := BuildMaterials(mats, selected)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0] != (Material{Name: "Glass", Variant: "5mm"}) {
		t.Errorf("chosen variant not used: %+v", out[0])
	}
	// unselected material defaults to its first variant; empty thickness
	// falls back to the unit label
	if out[1] != (Material{Name: "Hanging Hardware", Variant: "per item"}) {
		t.Errorf("default variant: %+v", out[1])
	}
	if out[2] != (Material{Name: "Mystery", Variant: ""}) {
		t.Errorf("variant-less material: %+v", out[2])
	}

	if got := BuildMaterials(nil, nil); len(got) != 0 {
		t.Errorf("no materials should give empty summary: %+v", got)
	}
}

func TestServiceAddRemoveClear(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	a := NewItem(ItemParams{ProductType: "Photo Frame", SellingPrice: 100, Quantity: 1})
	b := NewEmptyFrameItem("6x8", testFrame(), 50, 90, 3)

	if err := svc.Add(ctx, a); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Add(ctx, b); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := svc.Count(); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
	if got := svc.Total(); got != 100+90*3 {
		t.Errorf("total = %v, want 370", got)
	}

	if err := svc.Remove(ctx, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if items := svc.Items(); len(items) != 1 || items[0].ProductType != ProductTypeEmptyFrame {
		t.Errorf("items after remove = %+v", items)
	}
	if err := svc.Remove(ctx, 5); err == nil {
		t.Error("out-of-range remove should fail")
	}

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(svc.Items()) != 0 {
		t.Error("cart not empty after clear")
	}

	// persisted snapshot matches
	persisted, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(persisted) != 0 {
		t.Errorf("store still has %d items", len(persisted))
	}
}

func TestServiceUpdateQuantityFloor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, NewItem(ItemParams{ProductType: "Photo Frame", Quantity: 2})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, 0, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := svc.Items()[0].Quantity; got != 1 {
		t.Errorf("quantity = %d, want floor of 1", got)
	}
}

func TestServiceNotifiesSubscribers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	calls := 0
	svc.Subscribe(func() { calls++ })

	_ = svc.Add(ctx, NewItem(ItemParams{ProductType: "Photo Frame"}))
	_ = svc.UpdateQuantity(ctx, 0, 2)
	_ = svc.Clear(ctx)

	if calls != 3 {
		t.Errorf("subscriber called %d times, want 3", calls)
	}
}

func TestServiceRollsBackOnPersistFailure(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	store.FailSave = true
	notified := false
	svc.Subscribe(func() { notified = true })

	if err := svc.Add(ctx, NewItem(ItemParams{ProductType: "Photo Frame"})); err == nil {
		t.Fatal("expected persist error")
	}
	if len(svc.Items()) != 0 {
		t.Error("failed mutation must not change the cart")
	}
	if notified {
		t.Error("failed mutation must not notify subscribers")
	}
}

func TestServiceLoadsPersistedCart(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.Save(ctx, []Item{NewEmptyFrameItem("6x8", testFrame(), 50, 90, 2)})

	svc := NewService(ctx, store, zap.NewNop())
	if got := svc.Count(); got != 2 {
		t.Errorf("loaded count = %d, want 2", got)
	}
}
