package service

import (
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/quizdesk/classroom/config"
	"github.com/quizdesk/classroom/internal/model"
)

// Checkout is the gateway's view of a freshly minted payment session.
type Checkout struct {
	GatewayID   string
	CheckoutURL string
}

// PaymentGateway abstracts the external payment collaborator.
type PaymentGateway interface {
	CreateCheckout(amount int64, correlationID, description, customerName, customerEmail string) (*Checkout, error)
}

type midtransGateway struct {
	client snap.Client
}

func NewPaymentGateway(cfg *config.Config) PaymentGateway {
	env := midtrans.Sandbox
	if cfg.Payment.Production {
		env = midtrans.Production
	}

	g := &midtransGateway{}
	g.client.New(cfg.Payment.ServerKey, env)
	return g
}

func (g *midtransGateway) CreateCheckout(amount int64, correlationID, description, customerName, customerEmail string) (*Checkout, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  correlationID,
			GrossAmt: amount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    correlationID,
				Name:  description,
				Price: amount,
				Qty:   1,
			},
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Email: customerEmail,
		},
	}

	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return nil, err
	}
	return &Checkout{GatewayID: resp.Token, CheckoutURL: resp.RedirectURL}, nil
}

// NormalizeGatewayStatus maps a gateway transaction status onto the local
// order status vocabulary. Unknown statuses pass through lowercased.
func NormalizeGatewayStatus(status string) string {
	switch strings.ToLower(status) {
	case "settlement", "capture", "paid":
		return model.OrderStatusPaid
	case "deny", "failure":
		return model.OrderStatusFailed
	case "cancel":
		return model.OrderStatusCanceled
	case "expire":
		return model.OrderStatusExpired
	case "pending":
		return model.OrderStatusPending
	default:
		return strings.ToLower(status)
	}
}
