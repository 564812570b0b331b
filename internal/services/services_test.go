package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/exposeprofi/proposals/internal/cache"
	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/db"
	"github.com/exposeprofi/proposals/internal/delivery"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/drafts"
	"github.com/exposeprofi/proposals/internal/pricing"
	"github.com/exposeprofi/proposals/internal/proposal"
	"github.com/exposeprofi/proposals/internal/quote"
)

type recordingNotifier struct {
	mu        sync.Mutex
	summaries []proposal.Summary
	err       error
}

func (n *recordingNotifier) ProposalCreated(_ context.Context, summary proposal.Summary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.summaries = append(n.summaries, summary)
	return n.err
}

func (n *recordingNotifier) received() []proposal.Summary {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]proposal.Summary(nil), n.summaries...)
}

type failingProposalStore struct{}

func (failingProposalStore) Create(context.Context, *db.Proposal) error {
	return errors.New("connection refused")
}

func (failingProposalStore) GetByOfferNumber(context.Context, string) (*db.Proposal, error) {
	return nil, db.ErrNotFound
}

type testServices struct {
	catalog   *catalog.Catalog
	quotes    *QuoteService
	drafts    *DraftService
	clients   *ClientService
	proposals *ProposalService
	store     *db.MemoryProposalStore
	notifier  *recordingNotifier
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	engine, err := pricing.NewEngine(c, nil, logger)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	estimator := delivery.NewEstimator(c.DeliveryRules())
	cacheProvider, err := cache.NewMemoryProvider(16)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	clientStore := db.NewMemoryClientStore(db.Client{
		ClientID:    "K-1001",
		CompanyName: "Müller & Söhne GmbH",
		Email:       "info@mueller.example",
	})

	s := &testServices{
		catalog:  c,
		store:    db.NewMemoryProposalStore(),
		notifier: &recordingNotifier{},
	}
	s.quotes = NewQuoteService(c, engine, estimator, logger)
	s.drafts = NewDraftService(drafts.NewMemoryStore(), c, s.quotes, time.Hour, logger)
	s.clients = NewClientService(clientStore, cacheProvider, time.Minute, logger)
	s.proposals = NewProposalService(ProposalServiceDeps{
		Assembler:        proposal.NewAssembler(c, engine, estimator, logger),
		Store:            s.store,
		Clients:          s.clients,
		Drafts:           s.drafts,
		Notifier:         s.notifier,
		DefaultSignature: "Christopher Helm",
		Logger:           logger,
	})
	return s
}

func TestQuoteService_Preview(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	preview, err := s.quotes.Preview(QuoteInput{
		Services: []quote.SelectedService{
			{ServiceID: "interior", Selected: true, Quantity: 1},
			{ServiceID: "exterior-ground", Selected: true, Quantity: 1},
			{ServiceID: "slideshow", Selected: false, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}

	if len(preview.Lines) != 2 {
		t.Fatalf("lines got %d, want 2", len(preview.Lines))
	}
	if preview.Lines[0].UnitPrice != 399 || preview.Lines[0].Name != "3D-Innenvisualisierung" {
		t.Fatalf("interior line got %+v", preview.Lines[0])
	}
	if preview.Lines[1].Complete {
		t.Fatalf("exterior-ground without building type should be incomplete")
	}
	if len(preview.Incomplete) != 1 || preview.Incomplete[0] != "exterior-ground" {
		t.Fatalf("incomplete got %v, want [exterior-ground]", preview.Incomplete)
	}
	if preview.Formatted.TotalGross != "474,81 €" {
		t.Fatalf("gross got %q, want %q", preview.Formatted.TotalGross, "474,81 €")
	}
	if preview.DeliveryDays != "5-6" {
		t.Fatalf("delivery got %q, want %q", preview.DeliveryDays, "5-6")
	}
}

func TestQuoteService_PreviewRejectsInvalidQuantity(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	_, err := s.quotes.Preview(QuoteInput{
		Services: []quote.SelectedService{{ServiceID: "interior", Selected: true, Quantity: 5000}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error got %v, want ErrInvalidInput", err)
	}
}

func TestQuoteService_PreviewRejectsOutOfRangeAmounts(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	tests := []struct {
		name  string
		input QuoteInput
	}{
		{
			name: "huge custom unit price",
			input: QuoteInput{Services: []quote.SelectedService{
				{ServiceID: "interior", Selected: true, Quantity: 2, CustomUnitPrice: 1e308},
			}},
		},
		{
			name: "NaN discount",
			input: QuoteInput{
				Services: []quote.SelectedService{{ServiceID: "interior", Selected: true, Quantity: 1}},
				Discount: &quote.Discount{Type: quote.DiscountFixed, Value: quote.Amount(math.NaN())},
			},
		},
		{
			name: "infinite discount",
			input: QuoteInput{
				Services: []quote.SelectedService{{ServiceID: "interior", Selected: true, Quantity: 1}},
				Discount: &quote.Discount{Type: quote.DiscountPercentage, Value: quote.Amount(math.Inf(1))},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := s.quotes.Preview(tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("error got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestQuoteService_PreviewLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	svc := quote.SelectedService{ServiceID: "interior", Selected: true, Quantity: 1}
	svc.AddCustom("<script>alert(1)</script>Extra")
	input := QuoteInput{Services: []quote.SelectedService{svc}}

	if _, err := s.quotes.Preview(input); err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}
	if got := input.Services[0].CustomDescription[0].Text; got != "<script>alert(1)</script>Extra" {
		t.Fatalf("caller's bullet got %q, want it unchanged", got)
	}
}

func TestDraftService_EditFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestServices(t)

	view, err := s.drafts.Create(ctx)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	id := view.Draft.ID

	view, err = s.drafts.UpdateService(ctx, id, "interior", ServiceUpdate{Selected: true, Quantity: 3})
	if err != nil {
		t.Fatalf("UpdateService returned error: %v", err)
	}
	if view.Preview.Totals.SubtotalNet != 867 {
		t.Fatalf("subtotal got %v, want 867", view.Preview.Totals.SubtotalNet)
	}

	view, err = s.drafts.EditDefaultBullet(ctx, id, "interior", BulletEdit{Op: BulletOpEdit, Path: "0", Text: "Geänderter Punkt"})
	if err != nil {
		t.Fatalf("EditDefaultBullet returned error: %v", err)
	}
	if got := view.Descriptions["interior"][0].Text; got != "Geänderter Punkt" {
		t.Fatalf("first bullet got %q, want %q", got, "Geänderter Punkt")
	}

	view, err = s.drafts.EditCustomBullet(ctx, id, "interior", BulletEdit{Op: BulletOpAdd, Text: "<b>Zusatz</b>"})
	if err != nil {
		t.Fatalf("EditCustomBullet returned error: %v", err)
	}
	nodes := view.Descriptions["interior"]
	if got := nodes[len(nodes)-1].Text; got != "Zusatz" {
		t.Fatalf("custom bullet got %q, want %q", got, "Zusatz")
	}

	view, err = s.drafts.SetDiscount(ctx, id, &quote.Discount{Type: quote.DiscountFixed, Value: 67})
	if err != nil {
		t.Fatalf("SetDiscount returned error: %v", err)
	}
	if view.Preview.Totals.TotalNet != 800 {
		t.Fatalf("net got %v, want 800", view.Preview.Totals.TotalNet)
	}

	stored, err := s.drafts.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Draft.Discount == nil || stored.Draft.Discount.Value != 67 {
		t.Fatalf("stored discount got %+v", stored.Draft.Discount)
	}
}

func TestDraftService_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestServices(t)
	view, err := s.drafts.Create(ctx)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	id := view.Draft.ID

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "missing draft",
			run: func() error {
				_, err := s.drafts.Get(ctx, "nope")
				return err
			},
			want: drafts.ErrNotFound,
		},
		{
			name: "unknown service",
			run: func() error {
				_, err := s.drafts.UpdateService(ctx, id, "hologram", ServiceUpdate{Selected: true, Quantity: 1})
				return err
			},
			want: quote.ErrUnknownService,
		},
		{
			name: "bad path",
			run: func() error {
				_, err := s.drafts.EditDefaultBullet(ctx, id, "interior", BulletEdit{Op: BulletOpEdit, Path: "x", Text: "a"})
				return err
			},
			want: description.ErrInvalidPath,
		},
		{
			name: "add on default bullets",
			run: func() error {
				_, err := s.drafts.EditDefaultBullet(ctx, id, "interior", BulletEdit{Op: BulletOpAdd, Path: "0", Text: "a"})
				return err
			},
			want: ErrInvalidInput,
		},
		{
			name: "custom unit price out of range",
			run: func() error {
				_, err := s.drafts.UpdateService(ctx, id, "interior", ServiceUpdate{Selected: true, Quantity: 2, CustomUnitPrice: 1e308})
				return err
			},
			want: ErrInvalidInput,
		},
		{
			name: "empty text",
			run: func() error {
				_, err := s.drafts.EditCustomBullet(ctx, id, "interior", BulletEdit{Op: BulletOpAdd})
				return err
			},
			want: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("error got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClientService_LookupUsesCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := db.NewMemoryClientStore(db.Client{ClientID: "K-7", CompanyName: "Alt GmbH"})
	provider, err := cache.NewMemoryProvider(8)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	svc := NewClientService(store, provider, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	first, err := svc.Lookup(ctx, " K-7 ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if first.CompanyName != "Alt GmbH" {
		t.Fatalf("company got %q, want %q", first.CompanyName, "Alt GmbH")
	}

	store.Put(db.Client{ClientID: "K-7", CompanyName: "Neu GmbH"})
	second, err := svc.Lookup(ctx, "K-7")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if second.CompanyName != "Alt GmbH" {
		t.Fatalf("cached company got %q, want %q", second.CompanyName, "Alt GmbH")
	}

	if _, err := svc.Lookup(ctx, "K-404"); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("error got %v, want db.ErrNotFound", err)
	}
	if _, err := svc.LookupByEmail(ctx, ""); !errors.Is(err, ErrClientRequired) {
		t.Fatalf("error got %v, want ErrClientRequired", err)
	}
}

func proposalInput() CreateProposalInput {
	return CreateProposalInput{
		Client: &proposal.ClientInfo{ClientNumber: "K-1001", CompanyName: "Mueller"},
		Project: proposal.ProjectInfo{
			ProjectName: "Neubau Mitte",
			Date:        "14.03.2025",
		},
		Services: []quote.SelectedService{
			{ServiceID: "interior", Selected: true, Quantity: 3},
		},
		Discount: &quote.Discount{Type: quote.DiscountPercentage, Value: 10},
		Images:   []proposal.ImageMeta{{Title: "Ansicht", ImageData: "aGVsbG8="}},
	}
}

func TestProposalService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestServices(t)

	result, err := s.proposals.Create(ctx, proposalInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	s.proposals.Wait()

	if result.Record.Client.CompanyName != "Müller & Söhne GmbH" {
		t.Fatalf("company got %q, want the stored client name", result.Record.Client.CompanyName)
	}
	if result.Record.Signature.SignatureName != "Christopher Helm" {
		t.Fatalf("signature got %q, want default", result.Record.Signature.SignatureName)
	}
	// 867 - 86.70 = 780.30 net, 928.557 gross
	if result.TotalGross != "928,56 €" {
		t.Fatalf("gross got %q, want %q", result.TotalGross, "928,56 €")
	}
	if result.Record.Project.DeliveryDays != "7-9" {
		t.Fatalf("delivery got %q, want %q", result.Record.Project.DeliveryDays, "7-9")
	}

	stored, err := s.proposals.Get(ctx, result.OfferNumber)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.ClientID != "K-1001" {
		t.Fatalf("client id got %q, want %q", stored.ClientID, "K-1001")
	}
	if stored.Record.Images[0].ImageData != "" {
		t.Fatalf("stored record should not keep image data")
	}

	summaries := s.notifier.received()
	if len(summaries) != 1 {
		t.Fatalf("notifications got %d, want 1", len(summaries))
	}
	if summaries[0].OfferNumber != result.OfferNumber || summaries[0].ImagesIncluded != 1 {
		t.Fatalf("summary got %+v", summaries[0])
	}
}

func TestProposalService_CreateCleansBulletText(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestServices(t)

	svc := quote.SelectedService{ServiceID: "interior", Selected: true, Quantity: 1}
	svc.AddCustom("<script>alert(1)</script>Extra")
	input := proposalInput()
	input.Services = []quote.SelectedService{svc}

	result, err := s.proposals.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	s.proposals.Wait()

	nodes := result.Record.Services[0].Description
	if got := nodes[len(nodes)-1].Text; got != "Extra" {
		t.Fatalf("custom bullet got %q, want %q", got, "Extra")
	}
	stored, err := s.proposals.Get(ctx, result.OfferNumber)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	nodes = stored.Record.Services[0].Description
	if got := nodes[len(nodes)-1].Text; got != "Extra" {
		t.Fatalf("stored custom bullet got %q, want %q", got, "Extra")
	}
	if got := input.Services[0].CustomDescription[0].Text; got != "<script>alert(1)</script>Extra" {
		t.Fatalf("caller's bullet got %q, want it unchanged", got)
	}
}

func TestProposalService_CreateFromDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestServices(t)

	view, err := s.drafts.Create(ctx)
	if err != nil {
		t.Fatalf("Create draft returned error: %v", err)
	}
	if _, err := s.drafts.UpdateService(ctx, view.Draft.ID, "slideshow", ServiceUpdate{Selected: true, Quantity: 1}); err != nil {
		t.Fatalf("UpdateService returned error: %v", err)
	}

	input := proposalInput()
	input.DraftID = view.Draft.ID
	input.Services = nil
	input.Discount = nil

	result, err := s.proposals.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	s.proposals.Wait()

	if len(result.Record.Services) != 1 || result.Record.Services[0].ServiceID != "slideshow" {
		t.Fatalf("services got %+v, want slideshow only", result.Record.Services)
	}
	if result.Record.Pricing.Raw.SubtotalNet != 199 {
		t.Fatalf("subtotal got %v, want 199", result.Record.Pricing.Raw.SubtotalNet)
	}
}

func TestProposalService_CreateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*CreateProposalInput)
		want   error
	}{
		{
			name:   "no client",
			mutate: func(in *CreateProposalInput) { in.Client = nil },
			want:   ErrClientRequired,
		},
		{
			name:   "blank company",
			mutate: func(in *CreateProposalInput) { in.Client.CompanyName = "  " },
			want:   ErrClientRequired,
		},
		{
			name:   "nothing selected",
			mutate: func(in *CreateProposalInput) { in.Services[0].Selected = false },
			want:   ErrNoServicesSelected,
		},
		{
			name:   "unknown draft",
			mutate: func(in *CreateProposalInput) { in.DraftID = "missing" },
			want:   drafts.ErrNotFound,
		},
		{
			name:   "invalid email",
			mutate: func(in *CreateProposalInput) { in.Client.Email = "not-an-email" },
			want:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestServices(t)
			input := proposalInput()
			tt.mutate(&input)

			if _, err := s.proposals.Create(context.Background(), input); !errors.Is(err, tt.want) {
				t.Fatalf("error got %v, want %v", err, tt.want)
			}
			if got := len(s.notifier.received()); got != 0 {
				t.Fatalf("notifications got %d, want 0", got)
			}
		})
	}
}

func TestProposalService_StoreFailureFailsRequest(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	s.proposals.store = failingProposalStore{}

	if _, err := s.proposals.Create(context.Background(), proposalInput()); err == nil {
		t.Fatalf("expected error when the store fails")
	}
	s.proposals.Wait()
	if got := len(s.notifier.received()); got != 0 {
		t.Fatalf("notifications got %d, want 0", got)
	}
}

func TestProposalService_NotificationFailureIsNotSurfaced(t *testing.T) {
	t.Parallel()

	s := newTestServices(t)
	s.notifier.err = errors.New("webhook down")

	if _, err := s.proposals.Create(context.Background(), proposalInput()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	s.proposals.Wait()
}
