package workbench

// FixtureCatalog serves the built-in mock source tables. The backing tables
// are never handed out directly; Table and Tables return deep copies.
type FixtureCatalog struct {
	tables []DatabaseTable
}

// NewFixtureCatalog builds a catalog seeded with the default mock tables.
func NewFixtureCatalog() *FixtureCatalog {
	return &FixtureCatalog{tables: DefaultTables()}
}

// NewCatalog builds a catalog from the provided tables.
func NewCatalog(tables []DatabaseTable) *FixtureCatalog {
	return &FixtureCatalog{tables: tables}
}

// Table returns a copy of the table with the given id.
func (c *FixtureCatalog) Table(id string) (DatabaseTable, bool) {
	for _, t := range c.tables {
		if t.ID == id {
			return cloneTable(t), true
		}
	}
	return DatabaseTable{}, false
}

// Tables returns copies of every table in catalog order.
func (c *FixtureCatalog) Tables() []DatabaseTable {
	out := make([]DatabaseTable, len(c.tables))
	for i, t := range c.tables {
		out[i] = cloneTable(t)
	}
	return out
}

func cloneTable(t DatabaseTable) DatabaseTable {
	out := t
	out.Fields = append([]TableField(nil), t.Fields...)
	out.Data = CloneRows(t.Data)
	return out
}

// DefaultTables returns the mock connection fixtures: a sales order ledger and
// a marketing campaign log, ten rows each.
func DefaultTables() []DatabaseTable {
	return []DatabaseTable{
		{
			ID:   "t1",
			Name: "Sales_Orders",
			Fields: []TableField{
				{Name: "order_id", Type: FieldString},
				{Name: "campaign_id", Type: FieldString},
				{Name: "customer_name", Type: FieldString},
				{Name: "amount", Type: FieldNumber},
				{Name: "date", Type: FieldDate},
				{Name: "region", Type: FieldString},
				{Name: "category", Type: FieldString},
			},
			Data: []Row{
				salesOrder("ORD-101", "C-001", "TechCorp", 12500, "2023-10-01", "North", "Software"),
				salesOrder("ORD-102", "C-002", "SoftSystems", 8400, "2023-10-02", "West", "Hardware"),
				salesOrder("ORD-103", "C-001", "GlobalLogistics", 21000, "2023-10-03", "South", "Software"),
				salesOrder("ORD-104", "C-003", "CloudScale", 15600, "2023-10-04", "North", "Services"),
				salesOrder("ORD-105", "C-002", "RetailGiant", 45000, "2023-10-05", "East", "Hardware"),
				salesOrder("ORD-106", "C-004", "EduLearn", 5200, "2023-10-06", "West", "Software"),
				salesOrder("ORD-107", "C-001", "HealthPlus", 32000, "2023-10-07", "East", "Hardware"),
				salesOrder("ORD-108", "C-005", "FinSafe", 18900, "2023-10-08", "South", "Services"),
				salesOrder("ORD-109", "C-003", "BioGen", 27400, "2023-10-09", "North", "Software"),
				salesOrder("ORD-110", "C-004", "AlphaLog", 11200, "2023-10-10", "West", "Services"),
			},
		},
		{
			ID:   "t2",
			Name: "Marketing_Campaigns",
			Fields: []TableField{
				{Name: "campaign_id", Type: FieldString},
				{Name: "name", Type: FieldString},
				{Name: "date", Type: FieldDate},
				{Name: "spend", Type: FieldNumber},
				{Name: "clicks", Type: FieldNumber},
				{Name: "conversions", Type: FieldNumber},
				{Name: "channel", Type: FieldString},
			},
			Data: []Row{
				campaign("C-001", "Summer Blast", "2023-10-01", 5000, 12000, 450, "Social"),
				campaign("C-002", "Winter Warmth", "2023-10-02", 8000, 25000, 890, "Search"),
				campaign("C-001", "Summer Blast", "2023-10-03", 3000, 8000, 210, "Email"),
				campaign("C-003", "Autumn Deals", "2023-10-04", 1200, 4500, 180, "Social"),
				campaign("C-002", "Winter Warmth", "2023-10-05", 15000, 3500, 45, "LinkedIn"),
				campaign("C-004", "Flash Sale", "2023-10-06", 4200, 9000, 320, "Social"),
				campaign("C-001", "Summer Blast", "2023-10-07", 2500, 6000, 150, "Email"),
				campaign("C-005", "B2B Connect", "2023-10-08", 11000, 2800, 35, "LinkedIn"),
				campaign("C-003", "Autumn Deals", "2023-10-09", 5500, 11000, 410, "Search"),
				campaign("C-004", "Flash Sale", "2023-10-10", 1800, 5200, 195, "Social"),
			},
		},
	}
}

func salesOrder(id, campaignID, customer string, amount float64, date, region, category string) Row {
	return Row{
		"order_id":      String(id),
		"campaign_id":   String(campaignID),
		"customer_name": String(customer),
		"amount":        Number(amount),
		"date":          String(date),
		"region":        String(region),
		"category":      String(category),
	}
}

func campaign(id, name, date string, spend, clicks, conversions float64, channel string) Row {
	return Row{
		"campaign_id": String(id),
		"name":        String(name),
		"date":        String(date),
		"spend":       Number(spend),
		"clicks":      Number(clicks),
		"conversions": Number(conversions),
		"channel":     String(channel),
	}
}
