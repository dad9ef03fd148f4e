package ofx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DIRECTDEP
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024012001
<NAME>ACME CORP PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012501
<NAME>Whole Foods Market
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
</BANKTRANLIST>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestImportBankStatement(t *testing.T) {
	importer := NewImporter()

	txns, err := importer.Import(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "2024011501", txns[0].ID)
	assert.Equal(t, "STARBUCKS STORE #1234", txns[0].Name)
	assert.Equal(t, "2024-01-15", txns[0].Date)
	assert.InDelta(t, -25.50, txns[0].Amount, 0.0001)
	assert.Equal(t, "USD", txns[0].Currency)
	assert.Empty(t, txns[0].PrimaryCategory)

	// Direct deposits surface an income label for the normalizer.
	assert.Equal(t, "Income", txns[1].PrimaryCategory)
	assert.InDelta(t, 2500, txns[1].Amount, 0.0001)
}

func TestImportCreditCardStatement(t *testing.T) {
	importer := NewImporter()

	txns, err := importer.Import(strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, txns, 1)

	assert.Equal(t, "CC2024011001", txns[0].ID)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", txns[0].Name)
	assert.InDelta(t, -45.99, txns[0].Amount, 0.0001)
}

func TestImportInvalidFile(t *testing.T) {
	importer := NewImporter()

	_, err := importer.Import(strings.NewReader("not an ofx file"))
	assert.Error(t, err)
}

func TestPreprocessOFX(t *testing.T) {
	importer := NewImporter()

	t.Run("fixes mixed-case severity", func(t *testing.T) {
		got := importer.preprocessOFX("<SEVERITY>Info</SEVERITY>")
		assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", got)
	})

	t.Run("closes unterminated tags", func(t *testing.T) {
		got := importer.preprocessOFX("<OFX>\n<TRNUID\n</OFX>")
		assert.Contains(t, got, "<TRNUID>")
	})

	t.Run("trims leading blank lines", func(t *testing.T) {
		got := importer.preprocessOFX("\n\n  OFXHEADER:100")
		assert.True(t, strings.HasPrefix(got, "OFXHEADER"))
	})
}

func TestExtractNamePrefersPayeeAndStripsPrefixes(t *testing.T) {
	importer := NewImporter()

	txns, err := importer.Import(strings.NewReader(strings.Replace(sampleBankOFX,
		"<NAME>Whole Foods Market",
		"<NAME>POS PURCHASE Whole Foods Market", 1)))
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "Whole Foods Market", txns[2].Name)
}
