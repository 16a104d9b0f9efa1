package contacts

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"contactex.klederson.com/internal/permission"
	"github.com/emersion/go-vcard"
)

// VCardStore is the user's address book: a directory of .vcf files.
type VCardStore struct {
	Dir string
}

// AuthorizationStatus inspects the directory on every call. A missing
// directory means the user has not been asked yet.
func (s VCardStore) AuthorizationStatus() permission.Status {
	info, err := os.Stat(s.Dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return permission.NotDetermined
	case errors.Is(err, fs.ErrPermission):
		return permission.Denied
	case err != nil:
		return permission.Restricted
	case !info.IsDir():
		return permission.Restricted
	}

	if _, err := os.ReadDir(s.Dir); err != nil {
		return permission.Denied
	}
	return permission.Authorized
}

// RequestAccess creates the address book directory and reports whether it can
// now be read.
func (s VCardStore) RequestAccess() (bool, error) {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return false, ErrAccessDenied
		}
		return false, fmt.Errorf("creating address book: %w", err)
	}
	return s.AuthorizationStatus() == permission.Authorized, nil
}

// Enumerate reads every card in the address book, sorted by family name.
func (s VCardStore) Enumerate() ([]Contact, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("reading address book: %w", err)
	}

	var list []Contact
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".vcf") {
			continue
		}
		cards, err := readCards(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		list = append(list, cards...)
	}
	return Sort(list, ByLastName), nil
}

func readCards(path string) ([]Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var list []Contact
	dec := vcard.NewDecoder(f)
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
		}
		list = append(list, fromCard(card))
	}
	return list, nil
}

func fromCard(card vcard.Card) Contact {
	var first, last string
	if n := card.Name(); n != nil {
		first, last = n.GivenName, n.FamilyName
	}
	if first == "" && last == "" {
		first = card.PreferredValue(vcard.FieldFormattedName)
	}
	return New(first, last, card.PreferredValue(vcard.FieldEmail))
}
