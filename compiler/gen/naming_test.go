package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relgen/compiler/semantics"
	"github.com/syssam/relgen/dialect"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"AB", "ab"},
		{"ABC", "abc"},
		{"", ""},
		{"userInfo", "user_info"},
		{"PHBOrg", "phb_org"},
		{"UserIDs", "user_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := snake(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPublicNameDB(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"name", "name"},
		{"m_name", "name"},
		{"_name", "name"},
		{"name_", "name"},
		{"m__name__", "name"},
		{"m_", "m"},
		{"___", "___"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicNameDB(&semantics.Member{Name: tt.input}))
		})
	}
}

func TestFlatName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Person", "Person"},
		{"ns::Person", "ns_Person"},
		{"::ns::Person", "ns_Person"},
		{"a.b.c", "a_b_c"},
		{"Person.address.tags", "Person_address_tags"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FlatName(tt.input))
		})
	}
}

func TestEscape(t *testing.T) {
	c := newTestContext(t, semantics.NewUnit(testFile), nil, dialect.MSSQL, WithKeywords("mssql", "widget"))

	tests := []struct {
		input    string
		expected string
	}{
		{"person", "person"},
		{"first_name", "first_name"},
		{"1abc", "_1abc"},
		{"a1", "a1"},
		{"a-b c", "a_b_c"},
		{"café", "caf_"},
		{"", "_"},
		{"order", "order_"},
		{"ORDER", "ORDER_"},
		{"widget", "widget_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Escape(tt.input))
		})
	}
}

func TestMakeGuard(t *testing.T) {
	c := newTestContext(t, semantics.NewUnit(testFile), nil, dialect.MSSQL)

	tests := []struct {
		input    string
		expected string
	}{
		{"person", "PERSON"},
		{"personMssql", "PERSON_MSSQL"},
		{"person-odb.hxx", "PERSON_ODB_HXX"},
		{"HTTPServer", "HTTPSERVER"},
		{"2fa", "_2FA"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.MakeGuard(tt.input))
		})
	}
}

func TestTableName(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		table    string
		opts     []Option
		expected string
	}{
		{"snake by default", "PersonInfo", "", nil, "person_info"},
		{"plural", "PersonInfo", "", []Option{WithNaming(Naming{Plural: true})}, "person_infos"},
		{"upper", "PersonInfo", "", []Option{WithNaming(Naming{Case: CaseUpper})}, "PERSONINFO"},
		{"lower", "PersonInfo", "", []Option{WithNaming(Naming{Case: CaseLower})}, "personinfo"},
		{"preserve", "PersonInfo", "", []Option{WithNaming(Naming{Case: CasePreserve})}, "PersonInfo"},
		{"prefix", "PersonInfo", "", []Option{WithTablePrefix("app_")}, "app_person_info"},
		{"explicit name keeps the prefix", "PersonInfo", "people", []Option{WithTablePrefix("app_")}, "app_people"},
		{"explicit name ignores naming", "PersonInfo", "People", []Option{WithNaming(Naming{Case: CaseUpper})}, "People"},
		{"keyword escaped", "Order", "", nil, "order_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := semantics.NewUnit(testFile)
			k := objectClass(u, tt.class, 1)
			k.Table = tt.table
			c := newTestContext(t, u, nil, dialect.MSSQL, tt.opts...)
			assert.Equal(t, tt.expected, c.TableName(k))
		})
	}
}

func TestMemberTableName(t *testing.T) {
	u := semantics.NewUnit(testFile)
	k := objectClass(u, "Person", 1)
	nick := u.AddMember(k, "m_nicknames", u.Fundamental("strings"), pos(2))
	addr := u.AddMember(k, "address", u.Fundamental("Address"), pos(3))
	tags := &semantics.Member{Name: "tags"}

	c := newTestContext(t, u, nil, dialect.MSSQL, WithTablePrefix("app_"))
	p := c.ClassTablePrefix(k)
	assert.Equal(t, TablePrefix{Prefix: "app_person_", Level: 1}, p)
	assert.Equal(t, "app_person_nicknames", c.MemberTableName(nick, p))

	nested := p.Nested(addr)
	assert.Equal(t, TablePrefix{Prefix: "app_person_address_", Level: 2}, nested)
	assert.Equal(t, "app_person_address_tags", c.MemberTableName(tags, nested))

	nick.Table = "nicks"
	assert.Equal(t, "app_nicks", c.MemberTableName(nick, p))
}

func TestColumnNames(t *testing.T) {
	c := newTestContext(t, semantics.NewUnit(testFile), nil, dialect.MSSQL)

	m := &semantics.Member{Name: "m_address"}
	assert.Equal(t, "address", c.ColumnName(m))
	assert.Equal(t, "address_", c.CompositeColumnPrefix(m))
	assert.Equal(t, "value", c.ColumnNameKey(m, semantics.PartValue, "value"))

	m.Column = "addr"
	m.Parts = map[semantics.Part]semantics.PartSpec{semantics.PartValue: {Column: "val"}}
	assert.Equal(t, "addr", c.ColumnName(m))
	assert.Equal(t, "addr", c.CompositeColumnPrefix(m))
	assert.Equal(t, "val", c.ColumnNameKey(m, semantics.PartValue, "value"))
	assert.Equal(t, "index", c.ColumnNameKey(m, semantics.PartIndex, "index"))

	assert.Equal(t, "order_", c.ColumnName(&semantics.Member{Name: "order"}))
}

func TestQuote(t *testing.T) {
	u := semantics.NewUnit(testFile)
	assert.Equal(t, "[person]", newTestContext(t, u, nil, dialect.MSSQL).Quote("person"))
	assert.Equal(t, `"dbo"."person"`, newTestContext(t, u, nil, dialect.Postgres).Quote("dbo", "person"))
	assert.Equal(t, "`person`", newTestContext(t, u, nil, dialect.MySQL).Quote("person"))
}
