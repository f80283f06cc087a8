package valueobject

// Party — сторона заказа.
type Party string

const (
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
)

// SignalKind — вид сигнала стороны по открытому заказу.
type SignalKind string

const (
	SignalApproval     SignalKind = "approval"
	SignalCancellation SignalKind = "cancellation"
)

// Outcome — результат сверки сигналов двух сторон открытого заказа.
type Outcome string

const (
	// OutcomeNone — согласие обеих сторон ещё не достигнуто, средства не двигаются.
	OutcomeNone Outcome = "none"
	// OutcomeComplete — обе стороны одобрили сделку: эскроу переходит продавцу.
	OutcomeComplete Outcome = "complete"
	// OutcomeCancel — обе стороны запросили отмену: эскроу возвращается покупателю.
	OutcomeCancel Outcome = "cancel"
)

// Signals — сигналы сторон по открытому заказу.
type Signals struct {
	BuyerApproved         bool
	SellerApproved        bool
	BuyerCancelRequested  bool
	SellerCancelRequested bool
}

// Apply возвращает копию сигналов с выставленным флагом указанной стороны.
// Флаг одобрения можно переключать в обе стороны, пока заказ открыт.
func (s Signals) Apply(party Party, kind SignalKind, value bool) Signals {
	switch {
	case party == PartyBuyer && kind == SignalApproval:
		s.BuyerApproved = value
	case party == PartySeller && kind == SignalApproval:
		s.SellerApproved = value
	case party == PartyBuyer && kind == SignalCancellation:
		s.BuyerCancelRequested = value
	case party == PartySeller && kind == SignalCancellation:
		s.SellerCancelRequested = value
	}
	return s
}

// Resolve вычисляет исход заказа из пары двусторонних сигналов.
// Функция чистая и симметричная: порядок, в котором стороны подавали сигналы,
// значения не имеет. Пока совпадающей пары нет — исход OutcomeNone.
// Одобрение проверяется раньше отмены, поэтому заказ не может завершиться
// обоими исходами сразу.
func (s Signals) Resolve() Outcome {
	if s.BuyerApproved && s.SellerApproved {
		return OutcomeComplete
	}
	if s.BuyerCancelRequested && s.SellerCancelRequested {
		return OutcomeCancel
	}
	return OutcomeNone
}
