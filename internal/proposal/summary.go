package proposal

// Summary is the reduced view of a record sent to notification targets.
type Summary struct {
	OfferNumber    string        `json:"offerNumber"`
	Client         SummaryClient `json:"clientInfo"`
	Project        SummaryDates  `json:"projectInfo"`
	Pricing        SummaryTotals `json:"pricing"`
	Signature      Signature     `json:"signature"`
	FileName       string        `json:"filename"`
	ImagesIncluded int           `json:"imagesIncluded"`
}

type SummaryClient struct {
	CompanyName string `json:"companyName"`
	Street      string `json:"street"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type SummaryDates struct {
	Date            string `json:"date"`
	MM              string `json:"MM"`
	DD              string `json:"DD"`
	OfferValidUntil string `json:"offerValidUntil"`
	DeliveryDays    string `json:"deliveryDays"`
}

type SummaryTotals struct {
	TotalNet   string `json:"totalNetPrice"`
	TotalVAT   string `json:"totalVat"`
	TotalGross string `json:"totalGrossPrice"`
}

func (r *Record) Summary() Summary {
	return Summary{
		OfferNumber: r.OfferNumber,
		Client: SummaryClient{
			CompanyName: r.Client.CompanyName,
			Street:      r.Client.Street,
			PostalCode:  r.Client.PostalCode,
			City:        r.Client.City,
			Country:     r.Client.Country,
		},
		Project: SummaryDates{
			Date:            r.Project.Date,
			MM:              r.Project.MM,
			DD:              r.Project.DD,
			OfferValidUntil: r.Project.OfferValidUntil,
			DeliveryDays:    r.Project.DeliveryDays,
		},
		Pricing: SummaryTotals{
			TotalNet:   r.Pricing.TotalNet,
			TotalVAT:   r.Pricing.TotalVAT,
			TotalGross: r.Pricing.TotalGross,
		},
		Signature:      r.Signature,
		FileName:       r.FileName,
		ImagesIncluded: len(r.Images),
	}
}
