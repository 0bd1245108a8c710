package mysql

type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
}
