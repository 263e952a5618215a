package sqltype

import "fmt"

// Kind is the structured kind of an SQL type. The set spans every supported
// dialect; each grammar only produces the kinds its database knows.
type Kind uint8

// Kinds.
const (
	Invalid Kind = iota

	// Boolean and bit strings.
	Boolean
	Bit
	VarBit

	// Exact numerics.
	TinyInt
	SmallInt
	MediumInt
	Int
	Integer
	BigInt
	Decimal
	Numeric
	SmallMoney
	Money

	// Approximate numerics.
	Real
	Float
	Double
	DoublePrecision

	// Character strings.
	Char
	VarChar
	Text
	TinyText
	MediumText
	LongText
	NChar
	NVarChar
	NText

	// Binary strings.
	Binary
	VarBinary
	Image
	Blob
	TinyBlob
	MediumBlob
	LongBlob
	Bytea

	// Temporal.
	Date
	Time
	TimeTZ
	DateTime
	DateTime2
	SmallDateTime
	DateTimeOffset
	Timestamp
	TimestampTZ
	Year

	// Other.
	UniqueIdentifier
	RowVersion
	UUID
	Enum
	Set

	endKinds
)

var kindNames = [...]string{
	Invalid:          "INVALID",
	Boolean:          "BOOLEAN",
	Bit:              "BIT",
	VarBit:           "VARBIT",
	TinyInt:          "TINYINT",
	SmallInt:         "SMALLINT",
	MediumInt:        "MEDIUMINT",
	Int:              "INT",
	Integer:          "INTEGER",
	BigInt:           "BIGINT",
	Decimal:          "DECIMAL",
	Numeric:          "NUMERIC",
	SmallMoney:       "SMALLMONEY",
	Money:            "MONEY",
	Real:             "REAL",
	Float:            "FLOAT",
	Double:           "DOUBLE",
	DoublePrecision:  "DOUBLE PRECISION",
	Char:             "CHAR",
	VarChar:          "VARCHAR",
	Text:             "TEXT",
	TinyText:         "TINYTEXT",
	MediumText:       "MEDIUMTEXT",
	LongText:         "LONGTEXT",
	NChar:            "NCHAR",
	NVarChar:         "NVARCHAR",
	NText:            "NTEXT",
	Binary:           "BINARY",
	VarBinary:        "VARBINARY",
	Image:            "IMAGE",
	Blob:             "BLOB",
	TinyBlob:         "TINYBLOB",
	MediumBlob:       "MEDIUMBLOB",
	LongBlob:         "LONGBLOB",
	Bytea:            "BYTEA",
	Date:             "DATE",
	Time:             "TIME",
	TimeTZ:           "TIMETZ",
	DateTime:         "DATETIME",
	DateTime2:        "DATETIME2",
	SmallDateTime:    "SMALLDATETIME",
	DateTimeOffset:   "DATETIMEOFFSET",
	Timestamp:        "TIMESTAMP",
	TimestampTZ:      "TIMESTAMPTZ",
	Year:             "YEAR",
	UniqueIdentifier: "UNIQUEIDENTIFIER",
	RowVersion:       "ROWVERSION",
	UUID:             "UUID",
	Enum:             "ENUM",
	Set:              "SET",
}

// String returns the canonical keyword spelling of the kind.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Valid reports if k names a real SQL type.
func (k Kind) Valid() bool {
	return k > Invalid && k < endKinds
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i := Invalid; i < endKinds; i++ {
		if kindNames[i] == string(text) {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("sqltype: unknown kind %q", text)
}

// Integer reports if the kind is an exact integral type.
func (k Kind) Integer() bool {
	switch k {
	case TinyInt, SmallInt, MediumInt, Int, Integer, BigInt:
		return true
	}
	return false
}

// Numeric reports if the kind holds numbers.
func (k Kind) Numeric() bool {
	switch k {
	case Decimal, Numeric, SmallMoney, Money, Real, Float, Double, DoublePrecision:
		return true
	}
	return k.Integer()
}

// Textual reports if the kind holds character data.
func (k Kind) Textual() bool {
	switch k {
	case Char, VarChar, Text, TinyText, MediumText, LongText, NChar, NVarChar, NText, Enum, Set:
		return true
	}
	return false
}

// Binary reports if the kind holds raw bytes.
func (k Kind) Binary() bool {
	switch k {
	case Binary, VarBinary, Image, Blob, TinyBlob, MediumBlob, LongBlob, Bytea, RowVersion:
		return true
	}
	return false
}

// Temporal reports if the kind holds dates or times.
func (k Kind) Temporal() bool {
	switch k {
	case Date, Time, TimeTZ, DateTime, DateTime2, SmallDateTime, DateTimeOffset, Timestamp, TimestampTZ, Year:
		return true
	}
	return false
}
