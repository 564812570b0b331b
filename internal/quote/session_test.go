package quote

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/pricing"
)

func TestSession_EditDefaultBulletIsolatesServices(t *testing.T) {
	t.Parallel()

	c, _ := newTestAggregator(t)
	session := NewSession(c, nil, nil)

	groundBefore := c.DefaultDescription("exterior-ground")
	birdBefore := c.DefaultDescription("exterior-bird")

	if err := session.EditDefaultBullet("exterior-ground", description.Path{0, 1}, "Materialien im Fokus"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := session.EffectiveDescription("exterior-ground")
	if got[0].Children[1].Text != "Materialien im Fokus" {
		t.Fatalf("edited text got %q, want %q", got[0].Children[1].Text, "Materialien im Fokus")
	}
	if !description.Equal(got[0].Children[1].Children, groundBefore[0].Children[1].Children) {
		t.Fatalf("children of edited node changed")
	}
	for i := range got {
		if i == 0 {
			continue
		}
		if !description.Equal(got[i:i+1], groundBefore[i:i+1]) {
			t.Fatalf("unedited sibling %d changed", i)
		}
	}

	if !description.Equal(c.DefaultDescription("exterior-ground"), groundBefore) {
		t.Fatalf("catalog default mutated by edit")
	}
	if !description.Equal(session.EffectiveDescription("exterior-bird"), birdBefore) {
		t.Fatalf("other service description changed")
	}
}

func TestSession_CustomBulletsAppendAfterDefaults(t *testing.T) {
	t.Parallel()

	c, _ := newTestAggregator(t)
	session := NewSession(c, nil, nil)

	first, err := session.AddCustomBullet("exterior-bird", "Drohnenfoto als Grundlage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := session.AddCustomBullet("exterior-bird", "<b>Zwei</b> Varianten")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 0 || second != 1 {
		t.Fatalf("indices got %d,%d, want 0,1", first, second)
	}
	if _, err := session.AddCustomSubBullet("exterior-bird", description.Path{first}, "Tag und Nacht"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := c.DefaultDescription("exterior-bird")
	got := session.EffectiveDescription("exterior-bird")
	if len(got) != len(defaults)+2 {
		t.Fatalf("effective length got %d, want %d", len(got), len(defaults)+2)
	}
	custom := got[len(defaults):]
	if custom[0].Text != "Drohnenfoto als Grundlage" || len(custom[0].Children) != 1 {
		t.Fatalf("first custom bullet got %+v", custom[0])
	}
	if custom[1].Text != "Zwei Varianten" {
		t.Fatalf("sanitised text got %q, want %q", custom[1].Text, "Zwei Varianten")
	}

	svc, err := session.Service("exterior-bird")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.IsModified() {
		t.Fatalf("custom bullets must not clone the defaults")
	}
}

func TestSession_UnknownService(t *testing.T) {
	t.Parallel()

	c, _ := newTestAggregator(t)
	session := NewSession(c, nil, nil)

	if got := session.EffectiveDescription("hologram"); len(got) != 0 {
		t.Fatalf("description got %d nodes, want 0", len(got))
	}
	err := session.SetService("hologram", true, 1, pricing.Parameters{}, 0)
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("error got %v, want ErrUnknownService", err)
	}
	if len(session.Draft().Services) != 0 {
		t.Fatalf("draft services got %d, want 0", len(session.Draft().Services))
	}
}

func TestSession_SetServiceAndDiscount(t *testing.T) {
	t.Parallel()

	c, agg := newTestAggregator(t)
	session := NewSession(c, nil, nil)

	if err := session.SetService("interior", true, 10, pricing.Parameters{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.SetService("interior", true, -4, pricing.Parameters{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := session.Draft().Services[0].Quantity; got != 0 {
		t.Fatalf("negative quantity got %d, want 0", got)
	}
	if err := session.SetService("interior", true, 10, pricing.Parameters{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Draft().Services) != 1 {
		t.Fatalf("services got %d, want 1", len(session.Draft().Services))
	}

	session.SetDiscount(&Discount{Type: DiscountFixed, Value: 90, Description: "<i>Treue</i>rabatt"})
	if session.Draft().Discount.Description != "Treuerabatt" {
		t.Fatalf("discount description got %q", session.Draft().Discount.Description)
	}

	totals := agg.Aggregate(session.Draft().Services, session.Draft().Discount)
	if totals.SubtotalNet != 1990 {
		t.Fatalf("subtotal got %v, want 1990", totals.SubtotalNet)
	}
	if totals.TotalNet != 1900 {
		t.Fatalf("net got %v, want 1900", totals.TotalNet)
	}
}

func TestDraft_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	c, _ := newTestAggregator(t)
	session := NewSession(c, nil, nil)
	if err := session.EditDefaultBullet("slideshow", description.Path{0}, "Original"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session.SetDiscount(&Discount{Type: DiscountPercentage, Value: 5})

	clone := session.Draft().Clone()
	if err := session.EditDefaultBullet("slideshow", description.Path{0}, "Geändert"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session.Draft().Discount.Value = 50

	if clone.Services[0].ModifiedDefaults[0].Text != "Original" {
		t.Fatalf("clone text got %q, want %q", clone.Services[0].ModifiedDefaults[0].Text, "Original")
	}
	if clone.Discount.Value != 5 {
		t.Fatalf("clone discount got %v, want 5", clone.Discount.Value)
	}
}

func TestDraft_JSONKeepsEmptiedDefaults(t *testing.T) {
	t.Parallel()

	draft := &Draft{
		ID: "d-1",
		Services: []SelectedService{
			{ServiceID: "slideshow", Selected: true, Quantity: 1, Layer: description.Layer{ModifiedDefaults: []description.Node{}}},
			{ServiceID: "interior", Selected: true, Quantity: 1},
		},
	}

	data, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var got Draft
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if !got.Services[0].IsModified() {
		t.Fatalf("emptied defaults should stay modified after a round trip")
	}
	base := []description.Node{description.Leaf("Katalogpunkt")}
	if eff := got.Services[0].Effective(base); len(eff) != 0 {
		t.Fatalf("effective got %+v, want no bullets", eff)
	}
	if got.Services[1].IsModified() {
		t.Fatalf("untouched service should not be modified")
	}
}
