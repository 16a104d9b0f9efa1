package contacts

import (
	"contactex.klederson.com/internal/observable"
	"contactex.klederson.com/internal/permission"
	"github.com/sirupsen/logrus"
)

// AddressBook is the platform contact store.
type AddressBook interface {
	permission.Authorizer
	RequestAccess() (granted bool, err error)
	Enumerate() ([]Contact, error)
}

// SampleSource supplies the bundled sample list.
type SampleSource interface {
	Load() ([]Contact, error)
}

// Book holds both contact lists as observables.
type Book struct {
	address AddressBook
	samples SampleSource
	log     logrus.FieldLogger

	phone  *observable.Value[[]Contact]
	sample *observable.Value[[]Contact]
	order  *observable.Value[SortField]
}

// NewBook creates a Book and loads the sample list right away.
func NewBook(address AddressBook, samples SampleSource, log logrus.FieldLogger) *Book {
	b := &Book{
		address: address,
		samples: samples,
		log:     log,
		phone:   observable.New([]Contact{}),
		sample:  observable.New([]Contact{}),
		order:   observable.New(ByLastName),
	}
	b.FetchSample()
	return b
}

// Phone is the address book list.
func (b *Book) Phone() *observable.Value[[]Contact] { return b.phone }

// Sample is the bundled sample list.
func (b *Book) Sample() *observable.Value[[]Contact] { return b.sample }

// Order is the current sort field.
func (b *Book) Order() *observable.Value[SortField] { return b.order }

// List returns the contacts of source.
func (b *Book) List(source Source) []Contact {
	if source == Phone {
		return b.phone.Get()
	}
	return b.sample.Get()
}

// AccessDenied reads the address book authorization afresh.
func (b *Book) AccessDenied() bool {
	return b.address.AuthorizationStatus().IsDenied()
}

// FetchSample (re)loads the sample list in the current sort order. Decode
// errors are logged and leave the list unchanged.
func (b *Book) FetchSample() {
	list, err := b.samples.Load()
	if err != nil {
		b.log.WithError(err).Error("error while decoding sample contacts")
		return
	}
	b.sample.Set(Sort(list, b.order.Get()))
	b.log.WithFields(logrus.Fields{"source": Sample.String(), "count": len(list)}).Debug("contacts loaded")
}

// FetchPhone loads the address book if access is granted, asks for access if
// the user has not decided yet, and otherwise does nothing.
func (b *Book) FetchPhone() {
	switch status := b.address.AuthorizationStatus(); status {
	case permission.Authorized:
		b.enumerate()
	case permission.NotDetermined:
		granted, err := b.address.RequestAccess()
		if err != nil {
			b.log.WithError(err).Warn("address book access request failed")
			return
		}
		if granted {
			b.FetchPhone()
		}
	default:
		b.log.WithField("status", status.String()).Info("not authorized access")
	}
}

func (b *Book) enumerate() {
	list, err := b.address.Enumerate()
	if err != nil {
		b.log.WithError(err).Error("failed to enumerate contacts")
		return
	}
	b.phone.Set(Sort(list, b.order.Get()))
	b.log.WithFields(logrus.Fields{"source": Phone.String(), "count": len(list)}).Debug("contacts loaded")
}

// SortBy reorders both lists by field.
func (b *Book) SortBy(field SortField) {
	b.phone.Set(Sort(b.phone.Get(), field))
	b.sample.Set(Sort(b.sample.Get(), field))
	b.order.Set(field)
}
