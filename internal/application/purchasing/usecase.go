package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andilac/lacteos-api/internal/application/dto"
	"github.com/andilac/lacteos-api/internal/domain"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	domaininv "github.com/andilac/lacteos-api/internal/domain/inventory"
	"github.com/andilac/lacteos-api/internal/domain/repository"
	"github.com/andilac/lacteos-api/internal/domain/workflow"
)

// Tarifa de IVA vigente en Ecuador.
var ivaRate = decimal.NewFromFloat(0.15)

// PurchaseOrderUseCase casos de uso de órdenes de compra: creación con totales
// calculados en el servidor, ciclo de estados, pagos acumulados y envío de la
// orden al proveedor (PDF por correo, resumen por WhatsApp).
type PurchaseOrderUseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	paymentRepo  repository.PaymentRepository
	providerRepo repository.ProviderRepository
	productRepo  repository.ProductRepository
	pdf          OrderPDFGenerator
	email        EmailSender
	whatsapp     WhatsAppSender
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	orderRepo repository.PurchaseOrderRepository,
	paymentRepo repository.PaymentRepository,
	providerRepo repository.ProviderRepository,
	productRepo repository.ProductRepository,
	pdf OrderPDFGenerator,
	email EmailSender,
	whatsapp WhatsAppSender,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		providerRepo: providerRepo,
		productRepo:  productRepo,
		pdf:          pdf,
		email:        email,
		whatsapp:     whatsapp,
	}
}

// Create crea una orden en estado pre_order. Subtotal, IVA (15%, redondeado a
// 2 decimales) y total se calculan en el servidor; el número es secuencial por año.
func (uc *PurchaseOrderUseCase) Create(createdBy string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	provider, err := uc.providerRepo.GetByID(in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if provider.Status != entity.StatusActive {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	orderID := uuid.New().String()
	subtotal := decimal.Zero
	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) || it.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lineSubtotal := it.Quantity.Mul(it.UnitCost)
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Subtotal:  lineSubtotal,
		})
	}

	seq, err := uc.orderRepo.NextSequenceForYear(now.Year())
	if err != nil {
		return nil, err
	}

	iva := subtotal.Mul(ivaRate).Round(2)
	order := &entity.PurchaseOrder{
		ID:            orderID,
		Number:        domaininv.PurchaseOrderNumber(now, seq),
		ProviderID:    in.ProviderID,
		Items:         items,
		Subtotal:      subtotal,
		IVA:           iva,
		Total:         subtotal.Add(iva),
		Status:        entity.OrderStatusPreOrder,
		PaymentStatus: entity.PaymentStatusPending,
		IssueDate:     in.IssueDate,
		ExpectedDate:  in.ExpectedDate,
		Notes:         in.Notes,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.IssueDate.IsZero() {
		order.IssueDate = now
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetByID obtiene una orden con sus ítems.
func (uc *PurchaseOrderUseCase) GetByID(id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *PurchaseOrderUseCase) List(status string, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *ToOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus avanza la orden en su ciclo de vida. El estado paid no se asigna
// por esta vía: se alcanza solo cuando los pagos cubren el total.
func (uc *PurchaseOrderUseCase) UpdateStatus(id, status string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	if status == entity.OrderStatusPaid {
		return nil, domain.ErrInvalidTransition
	}
	next, err := workflow.PurchaseOrderMachine.Transition(order.Status, status)
	if err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// RegisterPayment registra un pago (total o parcial) contra una orden recibida.
// El estado de pago se deriva de la suma acumulada; cuando los pagos cubren el
// total la orden pasa a paid.
func (uc *PurchaseOrderUseCase) RegisterPayment(id, createdBy string, in dto.RegisterPaymentRequest) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusReceived {
		return nil, domain.ErrInvalidTransition
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Amount:    in.Amount,
		Method:    in.Method,
		Reference: in.Reference,
		PaidAt:    now,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	order.PaymentStatus = derivePaymentStatus(order.Total, paid)
	if order.PaymentStatus == entity.PaymentStatusPaid {
		next, err := workflow.PurchaseOrderMachine.Transition(order.Status, entity.OrderStatusPaid)
		if err != nil {
			return nil, err
		}
		order.Status = next
	}
	order.UpdatedAt = now
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ListPayments pagos registrados contra una orden.
func (uc *PurchaseOrderUseCase) ListPayments(id string) ([]dto.PaymentResponse, error) {
	if _, err := uc.getOrder(id); err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByOrder(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.PaymentResponse{
			ID:        p.ID,
			OrderID:   p.OrderID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			PaidAt:    p.PaidAt,
		})
	}
	return out, nil
}

// GeneratePDF genera el PDF de la orden para descarga o envío.
func (uc *PurchaseOrderUseCase) GeneratePDF(id string) ([]byte, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	provider, products, err := uc.orderContext(order)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GeneratePurchaseOrder(order, provider, products)
}

// SendEmail envía la orden (con PDF adjunto) al correo del proveedor y marca
// EmailSent. Requiere que la orden ya esté emitida.
func (uc *PurchaseOrderUseCase) SendEmail(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusPreOrder {
		return nil, domain.ErrConflict
	}
	provider, products, err := uc.orderContext(order)
	if err != nil {
		return nil, err
	}
	if provider.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	pdfBytes, err := uc.pdf.GeneratePurchaseOrder(order, provider, products)
	if err != nil {
		return nil, err
	}
	if err := uc.email.SendPurchaseOrder(ctx, provider.Email, order, pdfBytes); err != nil {
		return nil, err
	}
	order.EmailSent = true
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// SendWhatsApp envía el resumen de la orden al teléfono del proveedor y marca
// WhatsAppSent. Requiere que la orden ya esté emitida.
func (uc *PurchaseOrderUseCase) SendWhatsApp(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.getOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusPreOrder {
		return nil, domain.ErrConflict
	}
	provider, err := uc.providerRepo.GetByID(order.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrNotFound
	}
	if provider.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.whatsapp.SendPurchaseOrder(ctx, provider.Phone, order); err != nil {
		return nil, err
	}
	order.WhatsAppSent = true
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

func (uc *PurchaseOrderUseCase) getOrder(id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// orderContext carga el proveedor y los productos referenciados por la orden.
func (uc *PurchaseOrderUseCase) orderContext(order *entity.PurchaseOrder) (*entity.Provider, map[string]*entity.Product, error) {
	provider, err := uc.providerRepo.GetByID(order.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	if provider == nil {
		return nil, nil, domain.ErrNotFound
	}
	products := make(map[string]*entity.Product, len(order.Items))
	for _, item := range order.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, domain.ErrNotFound
		}
		products[item.ProductID] = p
	}
	return provider, products, nil
}

func derivePaymentStatus(total, paid decimal.Decimal) string {
	switch {
	case !paid.GreaterThan(decimal.Zero):
		return entity.PaymentStatusPending
	case paid.GreaterThanOrEqual(total):
		return entity.PaymentStatusPaid
	default:
		return entity.PaymentStatusPartial
	}
}

// ToOrderResponse mapea una orden a su DTO.
func ToOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		ProviderID:    o.ProviderID,
		Items:         items,
		Subtotal:      o.Subtotal,
		IVA:           o.IVA,
		Total:         o.Total,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		EmailSent:     o.EmailSent,
		WhatsAppSent:  o.WhatsAppSent,
		IssueDate:     o.IssueDate,
		ExpectedDate:  o.ExpectedDate,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
