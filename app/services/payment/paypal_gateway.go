package payment

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/app/services/paypal"
	"github.com/shashiranjanraj/vendika/config"
	"github.com/shashiranjanraj/vendika/pkg/database"
	"github.com/shashiranjanraj/vendika/pkg/logger"
	"github.com/shashiranjanraj/vendika/pkg/metrics"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

// PayPalGateway bridges orders to the PayPal checkout API. Platform
// credentials are shared; per-store settlement routes through the payee
// merchant id stored on the integration record.
type PayPalGateway struct {
	client    *paypal.Client
	lifecycle *services.OrderService
}

func NewPayPalGateway(client *paypal.Client) *PayPalGateway {
	return &PayPalGateway{
		client:    client,
		lifecycle: services.NewOrderService(),
	}
}

func (g *PayPalGateway) Provider() string { return models.ProviderPayPal }

// CreateRemoteOrder creates the remote intent and persists its id and status
// onto the order. A remote failure leaves the order pending with no provider
// id, so the customer may retry.
func (g *PayPalGateway) CreateRemoteOrder(ctx context.Context, order *models.Order, integration *models.PaymentIntegration, urls ReturnURLs) (CreateResult, error) {
	res, err := g.client.CreateOrder(ctx, paypal.CreateOrderParams{
		AmountCents: order.TotalAmount,
		Currency:    config.Currency(),
		MerchantID:  integration.ProviderID,
		ReferenceID: order.OrderNumber,
		BrandName:   config.AppName(),
		ReturnURL:   urls.Return,
		CancelURL:   urls.Cancel,
	})
	if err != nil {
		return CreateResult{}, err
	}

	order.PaymentProvider = models.ProviderPayPal
	order.PaymentID = res.ID
	order.PaymentStatus = res.Status
	if err := orm.DB().Save(order); err != nil {
		return CreateResult{}, err
	}

	logger.Info("paypal order created",
		"order_number", order.OrderNumber,
		"payment_id", res.ID,
	)
	return CreateResult{
		RemoteID:    res.ID,
		Status:      res.Status,
		ApprovalURL: res.ApproveURL,
	}, nil
}

// CaptureRemoteOrder reconciles the remote outcome into the order. A settled
// order (anything not pending) is returned unchanged so a replayed callback
// cannot re-fire the paid transition or re-clear the cart. The paid
// transition and the cart clear commit in one transaction.
//
// A transport failure leaves the order pending and returns the error; a
// provider-side decline transitions to payment_failed and returns nil, with
// the outcome readable from the order status.
func (g *PayPalGateway) CaptureRemoteOrder(ctx context.Context, order *models.Order) error {
	if order.Status != models.OrderStatusPending {
		return nil
	}

	res, err := g.client.CaptureOrder(ctx, order.PaymentID)
	if err != nil {
		var pe *errs.ProviderError
		if errors.As(err, &pe) && pe.Err == nil {
			// The provider answered and declined.
			logger.Warn("paypal capture declined",
				"order_number", order.OrderNumber,
				"payment_id", order.PaymentID,
				"reason", pe.Message,
			)
			return g.settle(order, pe.Message)
		}
		return err
	}

	if res.Status == paypal.StatusCompleted {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			return g.lifecycle.MarkPaid(tx, order, res.Status)
		})
		if err != nil {
			return err
		}
		metrics.PaymentCaptures.WithLabelValues(models.ProviderPayPal, "paid").Inc()
		logger.Info("paypal capture completed",
			"order_number", order.OrderNumber,
			"payment_id", order.PaymentID,
		)
		return nil
	}
	return g.settle(order, res.Status)
}

func (g *PayPalGateway) settle(order *models.Order, paymentStatus string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return g.lifecycle.MarkPaymentFailed(tx, order, paymentStatus)
	})
	if err != nil {
		return err
	}
	metrics.PaymentCaptures.WithLabelValues(models.ProviderPayPal, "failed").Inc()
	return nil
}

// CreatePartnerReferral starts merchant onboarding for the store and returns
// the provider's signup URL. The store id rides along as the tracking id and
// comes back on the onboarding return.
func (g *PayPalGateway) CreatePartnerReferral(ctx context.Context, store *models.Store, email, returnURL string) (OnboardingResult, error) {
	actionURL, err := g.client.CreatePartnerReferral(ctx, paypal.ReferralParams{
		Email:      email,
		TrackingID: strconv.FormatUint(uint64(store.ID), 10),
		ReturnURL:  returnURL,
	})
	if err != nil {
		return OnboardingResult{}, err
	}
	return OnboardingResult{ActionURL: actionURL}, nil
}
