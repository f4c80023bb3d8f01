package dump

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/goodnight/goodnight/pkg/types"
)

const (
	DefaultUnit = "RUB"

	unknownDate = "1970-01-01"
)

var funcs = template.FuncMap{
	"Quote":       strconv.Quote,
	"FormatPrice": types.FormatPrice,
}

type Account struct {
	Type string   `json:"type"`
	Path []string `json:"path"`
}

func (a Account) ToString() string {
	return a.Type + ":" + strings.Join(a.Path, ":")
}

type BeancountTransaction struct {
	Date        string            `json:"date"`
	Payee       string            `json:"payee"`
	Desc        string            `json:"desc"`
	Tags        []string          `json:"tags"`
	Metadata    map[string]string `json:"metadata"`
	ToAccount   Account           `json:"to_account"`
	FromAccount Account           `json:"from_account"`
	Amount      float64           `json:"amount"`
	Unit        string            `json:"unit"`
}

// accountName turns free text into a valid beancount account component.
// Letters and digits of any script are kept.
func accountName(s string) string {
	r := []rune(strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			return c
		}
		return -1
	}, s))
	if len(r) == 0 {
		return "Unknown"
	}

	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func billDate(bill types.Bill) string {
	t, err := types.ParseCreatedAt(bill.CreatedAt)
	if err != nil {
		return unknownDate
	}

	return t.Format("2006-01-02")
}

// billToTransactions books every item as an expense of the bill owed by
// the item's person.
func billToTransactions(bill types.Bill, unit string) []BeancountTransaction {
	expense := Account{Type: "Expenses", Path: []string{"Bills", accountName(bill.Title)}}
	date := billDate(bill)

	bcTxns := make([]BeancountTransaction, 0, len(bill.Items))
	for _, item := range bill.Items {
		bcTxns = append(bcTxns, BeancountTransaction{
			Date:        date,
			Payee:       item.Person,
			Desc:        item.Title,
			Tags:        []string{"bill" + bill.ID},
			Metadata:    map[string]string{"bill": bill.Title, "billid": bill.ID},
			ToAccount:   expense,
			FromAccount: Account{Type: "Liabilities", Path: []string{accountName(item.Person)}},
			Amount:      item.Price,
			Unit:        unit,
		})
	}

	return bcTxns
}

func processBills(bills []types.Bill, unit string) ([]BeancountTransaction, map[string]Account) {
	var bcTxns []BeancountTransaction
	accounts := make(map[string]Account)

	// Oldest first so the ledger reads chronologically.
	for i := len(bills) - 1; i >= 0; i-- {
		for _, bcTxn := range billToTransactions(bills[i], unit) {
			accounts[bcTxn.FromAccount.ToString()] = bcTxn.FromAccount
			accounts[bcTxn.ToAccount.ToString()] = bcTxn.ToAccount
			bcTxns = append(bcTxns, bcTxn)
		}
	}

	return bcTxns, accounts
}

func writeTransactions(w io.Writer, bcTxns []BeancountTransaction, accounts map[string]Account) error {
	if err := template.Must(template.New("open-account").Parse(openAccountTemplate)).Execute(w, accounts); err != nil {
		return fmt.Errorf("failed to generate open accounts: %w", err)
	}

	tpl := template.Must(template.New("transaction").Funcs(funcs).Parse(transactionTemplate))
	for _, bcTxn := range bcTxns {
		if err := tpl.Execute(w, bcTxn); err != nil {
			return fmt.Errorf("failed to generate transaction: %w", err)
		}
	}

	return nil
}

// Render writes the ledger for bills to w.
func Render(w io.Writer, bills []types.Bill, unit string) error {
	if unit == "" {
		unit = DefaultUnit
	}

	bcTxns, accounts := processBills(bills, unit)
	return writeTransactions(w, bcTxns, accounts)
}

// Dump renders the ledger for bills into the file at path.
func Dump(path string, bills []types.Bill, unit string) error {
	var buf bytes.Buffer
	if err := Render(&buf, bills, unit); err != nil {
		return fmt.Errorf("failed to render ledger: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}

	return nil
}
