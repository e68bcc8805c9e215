package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
	"github.com/vladislavdragonenkov/sagafitmi/internal/metrics"
	"github.com/vladislavdragonenkov/sagafitmi/internal/notify"
)

// Flow — сценарий подтверждения заказа со сверкой цен. Перед созданием
// заказа показываем пользователю строки корзины, чьи цены разошлись с
// актуальными, и пересчитанный итог; сам заказ бэкенд тарифицирует по
// собственным ценам.
type Flow struct {
	gateway domain.CheckoutGateway
	bus     *notify.Bus
	logger  *log.Entry
	metrics *metrics.StorefrontMetrics
}

// Preview — данные для диалога подтверждения заказа.
type Preview struct {
	// Mismatches — строки корзины с разошедшимися ценами; пусто, если
	// расхождений нет.
	Mismatches []domain.CartLine
	// Total — итог к показу: скорректированный, если проверка прошла,
	// иначе исходный.
	Total decimal.Decimal
	// Degraded — проверку выполнить не удалось, показан исходный итог.
	Degraded bool
}

// Confirmation — результат подтверждения заказа.
type Confirmation struct {
	Order domain.Order
	// Mismatches — расхождения цен, найденные уже после создания заказа.
	// Чисто информационные: заказ уже тарифицирован бэкендом.
	Mismatches []domain.CartLine
}

// NewFlow создаёт сценарий поверх шлюза бэкенда. bus и metrics опциональны.
func NewFlow(gateway domain.CheckoutGateway, bus *notify.Bus, logger *log.Entry, m *metrics.StorefrontMetrics) *Flow {
	if logger == nil {
		logger = log.WithField("component", "checkout")
	}
	return &Flow{
		gateway: gateway,
		bus:     bus,
		logger:  logger,
		metrics: m,
	}
}

// ResolveUser определяет идентификатор пользователя для операций с заказами:
// сначала из сессии, затем по сохранённому email. Найденный идентификатор
// кэшируется в сессии. Если не удалось — domain.ErrUserUnresolved, до сети
// дело не доходит.
func (f *Flow) ResolveUser(ctx context.Context, sess *domain.Session) (int64, error) {
	if sess == nil {
		return 0, domain.ErrUserUnresolved
	}
	if sess.UserID != 0 {
		return sess.UserID, nil
	}
	if sess.Email == "" {
		f.recordResolveError()
		return 0, domain.ErrUserUnresolved
	}

	user, err := f.gateway.UserByEmail(ctx, sess.Email)
	if err != nil {
		f.recordResolveError()
		f.logger.WithError(err).WithField("email", sess.Email).Warn("user lookup by email failed")
		return 0, fmt.Errorf("%w: %v", domain.ErrUserUnresolved, err)
	}

	sess.UserID = user.ID
	return user.ID, nil
}

// ComputeMismatch возвращает строки корзины с разошедшимися ценами.
// Пустой срез означает, что зафиксированные цены актуальны.
func (f *Flow) ComputeMismatch(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	lines, err := f.gateway.CartPriceMismatch(ctx, userID)
	if err != nil {
		return nil, err
	}
	if f.metrics != nil {
		f.metrics.RecordMismatchCheck(len(lines) > 0)
	}
	return lines, nil
}

// AdjustedTotal пересчитывает итог корзины с учётом расхождений:
// исходный итог плюс сумма (актуальная − зафиксированная) × количество
// по каждой разошедшейся строке.
func AdjustedTotal(original decimal.Decimal, mismatches []domain.CartLine) decimal.Decimal {
	total := original
	for _, line := range mismatches {
		delta := line.PriceDrift().Mul(decimal.NewFromInt32(line.Quantity))
		total = total.Add(delta)
	}
	return total
}

// PrepareConfirmation собирает данные для диалога подтверждения.
// Сбой проверки расхождений не блокирует оформление: показываем исходный
// итог и помечаем превью как деградированное.
func (f *Flow) PrepareConfirmation(ctx context.Context, sess *domain.Session, originalTotal decimal.Decimal) (Preview, error) {
	userID, err := f.ResolveUser(ctx, sess)
	if err != nil {
		return Preview{}, err
	}

	mismatches, err := f.ComputeMismatch(ctx, userID)
	if err != nil {
		f.logger.WithError(err).Warn("price mismatch check failed, showing original total")
		f.notifyAdvisory(err, "price-mismatch check")
		return Preview{Total: originalTotal, Degraded: true}, nil
	}

	return Preview{
		Mismatches: mismatches,
		Total:      AdjustedTotal(originalTotal, mismatches),
	}, nil
}

// ConfirmOrder создаёт заказ из текущей корзины пользователя. При успехе
// корзина в сессии очищается; при ошибке состояние корзины не меняется и
// диалог остаётся открытым для повтора. Расхождения цен, найденные после
// создания, прикладываются к результату справочно.
func (f *Flow) ConfirmOrder(ctx context.Context, sess *domain.Session) (Confirmation, error) {
	userID, err := f.ResolveUser(ctx, sess)
	if err != nil {
		f.recordOrderFailure()
		return Confirmation{}, err
	}

	order, err := f.gateway.CreateOrder(ctx, userID)
	if err != nil {
		f.recordOrderFailure()
		f.logger.WithError(err).WithField("user_id", userID).Error("order creation failed")
		f.notifyAdvisory(err, "orders.create")
		return Confirmation{}, err
	}

	if f.metrics != nil {
		f.metrics.RecordOrderConfirmed()
	}
	f.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
	}).Info("order confirmed")

	// Заказ создан, корзина на бэкенде пуста.
	sess.CartCount = 0
	if f.bus != nil {
		f.bus.Publish(notify.CartUpdated{UserID: userID})
	}

	confirmation := Confirmation{Order: order}

	// Справочная сверка после оформления: показать "старая цена / новая
	// цена" в окне результата. Сбой не портит успешный заказ.
	mismatches, err := f.ComputeMismatch(ctx, userID)
	if err != nil {
		f.logger.WithError(err).Warn("post-order mismatch check failed")
	} else {
		confirmation.Mismatches = mismatches
	}
	return confirmation, nil
}

func (f *Flow) recordResolveError() {
	if f.metrics != nil {
		f.metrics.RecordUserResolveError()
	}
}

func (f *Flow) recordOrderFailure() {
	if f.metrics != nil {
		f.metrics.RecordOrderFailure()
	}
}

func (f *Flow) notifyAdvisory(err error, endpoint string) {
	if f.bus == nil {
		return
	}
	if domain.IsAdvisory(err) {
		f.bus.Publish(notify.BackendUnreachable{Endpoint: endpoint})
	}
}
