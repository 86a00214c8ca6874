package parser

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of schemas/definitions
}

// GetDocumentStats returns statistics for a parsed document
func GetDocumentStats(doc *Document) DocumentStats {
	if doc == nil {
		return DocumentStats{}
	}
	stats := DocumentStats{
		PathCount:   len(doc.Paths),
		SchemaCount: len(doc.Schemas),
	}
	for _, item := range doc.Paths {
		stats.OperationCount += len(item.Operations())
	}
	return stats
}
