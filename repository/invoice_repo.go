package repository

import (
	"context"
	"log"
	"strconv"

	"lrlcargo/invoice"
	"lrlcargo/models"
)

// InvoiceRepository provides the data an invoice view needs: the cargo
// record, party lookups and the issuing branch.
type InvoiceRepository struct {
	CargoRepo  CargoRepository
	PartyRepo  PartyRepository
	BranchRepo BranchRepository
}

func NewInvoiceRepository(cargoRepo CargoRepository, partyRepo PartyRepository, branchRepo BranchRepository) *InvoiceRepository {
	return &InvoiceRepository{
		CargoRepo:  cargoRepo,
		PartyRepo:  partyRepo,
		BranchRepo: branchRepo,
	}
}

// GetCargoForInvoice fetches a single cargo by ID.
func (r *InvoiceRepository) GetCargoForInvoice(ctx context.Context, id int64) (*models.Cargo, error) {
	list, err := r.CargoRepo.GetCargo(ctx, map[string]interface{}{"id": id}, true)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// GetBranchForInvoice fetches the issuing branch.
func (r *InvoiceRepository) GetBranchForInvoice(ctx context.Context, id int64) (*models.Branch, error) {
	return r.BranchRepo.GetBranchByID(ctx, id)
}

// InvoiceData is the fully assembled invoice: the canonical record, the
// flattened box table, the resolved parties and the issuing branch.
type InvoiceData struct {
	Invoice  *invoice.NormalizedInvoice
	BoxRows  []invoice.BoxRow
	Sender   *invoice.Party
	Receiver *invoice.Party
	Branch   *models.Branch
}

// AssembleInvoice builds the invoice view from a fetched cargo row. The
// stored row is authoritative for booking number, tracking code and party
// links, so those are layered over whatever the payload carried. Branch
// resolution is best-effort; a missing branch leaves the header blank
// rather than failing the invoice.
func (r *InvoiceRepository) AssembleInvoice(ctx context.Context, src invoice.PartySource, cargo *models.Cargo) *InvoiceData {
	payload := cargo.Payload()
	if cargo.SenderPartyID != nil {
		payload["sender_party_id"] = *cargo.SenderPartyID
	}
	if cargo.ReceiverPartyID != nil {
		payload["receiver_party_id"] = *cargo.ReceiverPartyID
	}

	inv := invoice.Normalize(payload)
	if inv.BookingNo == "" {
		inv.BookingNo = cargo.BookingNo
	}
	if inv.TrackCode == "" {
		inv.TrackCode = cargo.TrackCode
	}
	if inv.ID == "" {
		inv.ID = strconv.FormatInt(cargo.ID, 10)
	}

	sender, receiver := invoice.ResolveParties(ctx, src, inv)

	data := &InvoiceData{
		Invoice:  inv,
		BoxRows:  invoice.BoxRows(payload),
		Sender:   sender,
		Receiver: receiver,
	}

	if cargo.BranchID != nil {
		branch, err := r.GetBranchForInvoice(ctx, *cargo.BranchID)
		if err != nil {
			log.Printf("invoice: branch %d lookup failed: %v", *cargo.BranchID, err)
		} else {
			data.Branch = branch
		}
	} else if cargo.Branch != nil {
		data.Branch = cargo.Branch
	}

	return data
}

// PartySource adapts the party repository to the resolver's lookup
// interface.
func (r *InvoiceRepository) PartySource() invoice.PartySource {
	return &repoPartySource{repo: r.PartyRepo}
}

type repoPartySource struct {
	repo PartyRepository
}

func (s *repoPartySource) PartyByID(ctx context.Context, id string) (map[string]interface{}, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetPartyByID(ctx, n)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return partyDoc(p), nil
}

func (s *repoPartySource) SearchParties(ctx context.Context, name string) ([]map[string]interface{}, error) {
	list, err := s.repo.SearchPartiesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, p := range list {
		out = append(out, partyDoc(p))
	}
	return out, nil
}

// partyDoc renders a stored party in the canonical document form the
// resolver consumes.
func partyDoc(p *models.Party) map[string]interface{} {
	doc := map[string]interface{}{
		"id":            p.ID,
		"name":          p.Name,
		"customer_type": float64(p.CustomerType),
		"address_line":  p.AddressLine,
		"post":          p.Post,
		"pin":           p.Pin,
		"dist":          p.Dist,
		"state":         p.State,
	}
	if p.Email != nil {
		doc["email"] = *p.Email
	}
	if p.DocumentType != nil {
		doc["document_type"] = *p.DocumentType
	}
	if p.DocumentID != nil {
		doc["document_id"] = *p.DocumentID
	}
	if p.Tel != nil {
		doc["tel"] = *p.Tel
	}
	return doc
}
