package catalog

// CollectionFullNames names the top-level collections.
var CollectionFullNames = map[string]string{
	"C1": "Positional gene sets",
	"C2": "Curated gene sets",
	"C3": "Regulatory target gene sets",
	"C4": "Computational gene sets",
	"C5": "Ontology gene sets",
	"C6": "Oncogenic signature gene sets",
	"C7": "Immunologic signature gene sets",
	"C8": "Cell type signature gene sets",
	"H":  "Hallmark gene sets",
	"M1": "Positional gene sets (mouse)",
	"M2": "Curated gene sets (mouse)",
	"M3": "Regulatory target gene sets (mouse)",
	"M5": "Ontology gene sets (mouse)",
	"M8": "Cell type signature gene sets (mouse)",
	"MH": "Hallmark gene sets (mouse)",
}

// SubCategoryFullNames names sub-categories, keyed by everything after the
// top-level code ("CP:KEGG" for "C2:CP:KEGG").
var SubCategoryFullNames = map[string]string{
	"CGP":             "CGP",
	"CP":              "CP",
	"CP:BIOCARTA":     "BioCarta",
	"CP:KEGG":         "KEGG",
	"CP:PID":          "PID",
	"CP:REACTOME":     "Reactome",
	"CP:WIKIPATHWAYS": "WikiPathways",
	"MIR:MIR_LEGACY":  "MIR_Legacy",
	"MIR:MIRDB":       "MIRDB",
	"TFT:GTRD":        "GTRD",
	"TFT:TFT_LEGACY":  "TFT_Legacy",
	"CGN":             "CGN",
	"CM":              "CM",
	"GO:BP":           "GO_BP",
	"GO:CC":           "GO_CC",
	"GO:MF":           "GO_MF",
	"HPO":             "HPO",
	"VAX":             "VAX",
}

// PlatformIDs mirrors the namespace table ids of the relational database so
// XML CHIP labels resolve to the same source_platform ids.
var PlatformIDs = map[string]int64{
	"Human_Ensembl_Gene_ID": 4,
	"Mouse_Ensembl_Gene_ID": 5,
	"Human_NCBI_Gene_ID":    7,
	"Mouse_NCBI_Gene_ID":    8,
	"HUMAN_GENE_SYMBOL":     10,
	"MOUSE_GENE_SYMBOL":     11,
	"AFFY_HG_U133":          13,
	"AFFY_HG_U95":           14,
	"AFFY_HuGene":           15,
	"AFFY_MG_U74":           16,
	"AFFY_Mouse430":         17,
	"AFFY_MoGene":           18,
	"AFFY_Mu11K":            19,
	"AFFY_Rat230":           20,
	"AFFY_RG_U34":           21,
	"AFFY_RaGene":           22,
	"Human_AGILENT_Array":   23,
	"Mouse_AGILENT_Array":   24,
	"Human_ILLUMINA_Array":  26,
	"Mouse_ILLUMINA_Array":  27,
	"Operon_V1.1":           28,
	"HUMAN_SEQ_ACCESSION":   29,
	"MOUSE_SEQ_ACCESSION":   30,
	"Human_RefSeq":          32,
	"Mouse_RefSeq":          33,
	"Human_Image_Clone_ID":  35,
	"Mouse_Image_Clone_ID":  36,
	"Human_UniProt_ID":      38,
	"Mouse_UniProt_ID":      39,
	"UniGene_ID":            41,
	"Human_Gene_Namespace":  42,
	"Mouse_Gene_Namespace":  43,
	"AFFY_HTA_2.0":          44,
}

// PlatformNamespaces returns PlatformIDs inverted into an id to label table.
func PlatformNamespaces() map[int64]string {
	out := make(map[int64]string, len(PlatformIDs))
	for label, id := range PlatformIDs {
		out[id] = label
	}
	return out
}
