// Package ofx serializa extractos en OFX 2.2 (XML), el formato que importan
// los gestores financieros y hojas de conciliación bancaria.
package ofx

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/finapi/internal/application/account"
	"github.com/jhoicas/finapi/internal/domain/entity"
)

const (
	ofxHeader   = `OFXHEADER="200" VERSION="220" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"`
	ofxDateTime = "20060102150405"
)

// Config datos fijos del banco emisor.
type Config struct {
	BankID   string // BANKID
	Currency string // CURDEF, ISO-4217
}

// StatementExporter implementa account.StatementOFXExporter usando etree.
type StatementExporter struct {
	cfg Config
}

// NewStatementExporter construye el exportador. Currency vacío → BRL.
func NewStatementExporter(cfg Config) *StatementExporter {
	if cfg.Currency == "" {
		cfg.Currency = "BRL"
	}
	return &StatementExporter{cfg: cfg}
}

var _ account.StatementOFXExporter = (*StatementExporter)(nil)

// ExportStatementOFX genera el documento:
//
//	OFX > BANKMSGSRSV1 > STMTTRNRS > STMTRS > {CURDEF, BANKACCTFROM, BANKTRANLIST > STMTTRN*, LEDGERBAL}
func (e *StatementExporter) ExportStatementOFX(_ context.Context, doc *account.StatementDocument) ([]byte, error) {
	if doc == nil || doc.Customer == nil {
		return nil, fmt.Errorf("ofx: documento sin cliente")
	}
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="no"`)
	x.CreateProcInst("OFX", ofxHeader)

	root := x.CreateElement("OFX")

	signon := root.CreateElement("SIGNONMSGSRSV1").CreateElement("SONRS")
	writeStatus(signon)
	signon.CreateElement("DTSERVER").SetText(formatDate(doc.GeneratedAt))
	signon.CreateElement("LANGUAGE").SetText("POR")

	trnrs := root.CreateElement("BANKMSGSRSV1").CreateElement("STMTTRNRS")
	trnrs.CreateElement("TRNUID").SetText(doc.Customer.ID)
	writeStatus(trnrs)

	stmt := trnrs.CreateElement("STMTRS")
	stmt.CreateElement("CURDEF").SetText(e.cfg.Currency)

	acct := stmt.CreateElement("BANKACCTFROM")
	acct.CreateElement("BANKID").SetText(e.cfg.BankID)
	acct.CreateElement("ACCTID").SetText(doc.Customer.ID)
	acct.CreateElement("ACCTTYPE").SetText("CHECKING")

	start, end := period(doc)
	list := stmt.CreateElement("BANKTRANLIST")
	list.CreateElement("DTSTART").SetText(formatDate(start))
	list.CreateElement("DTEND").SetText(formatDate(end))
	for _, op := range doc.Operations {
		writeTransaction(list, op)
	}

	bal := stmt.CreateElement("LEDGERBAL")
	bal.CreateElement("BALAMT").SetText(doc.Balance.StringFixed(2))
	bal.CreateElement("DTASOF").SetText(formatDate(doc.GeneratedAt))

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ofx: serializar: %w", err)
	}
	return out, nil
}

func writeStatus(parent *etree.Element) {
	status := parent.CreateElement("STATUS")
	status.CreateElement("CODE").SetText("0")
	status.CreateElement("SEVERITY").SetText("INFO")
}

func writeTransaction(list *etree.Element, op entity.Operation) {
	trn := list.CreateElement("STMTTRN")
	amount := op.Amount
	trnType := "CREDIT"
	memo := op.Description
	if op.Type == entity.OperationTypeDebit {
		trnType = "DEBIT"
		amount = amount.Neg()
		if memo == "" {
			memo = "Saque"
		}
	} else if memo == "" {
		memo = "Depósito"
	}
	trn.CreateElement("TRNTYPE").SetText(trnType)
	trn.CreateElement("DTPOSTED").SetText(formatDate(op.CreatedAt))
	trn.CreateElement("TRNAMT").SetText(amount.StringFixed(2))
	trn.CreateElement("FITID").SetText(op.ID)
	trn.CreateElement("MEMO").SetText(memo)
}

// period rango cubierto por el extracto: el día pedido, o de la primera a la última operación.
func period(doc *account.StatementDocument) (time.Time, time.Time) {
	if doc.Day != nil {
		d := *doc.Day
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		return start, start.AddDate(0, 0, 1).Add(-time.Second)
	}
	if len(doc.Operations) == 0 {
		return doc.GeneratedAt, doc.GeneratedAt
	}
	return doc.Operations[0].CreatedAt, doc.Operations[len(doc.Operations)-1].CreatedAt
}

// formatDate formato OFX con zona: 20241016153000[-3:BRT]
func formatDate(t time.Time) string {
	name, offset := t.Zone()
	return fmt.Sprintf("%s[%d:%s]", t.Format(ofxDateTime), offset/3600, name)
}
