package render

import "genesetdocs/internal/models"

// overlapCollection is one entry of the compute-overlaps tree.
type overlapCollection struct {
	Code     string
	Name     string
	Children []overlapCollection
}

var mouseOverlaps = []overlapCollection{
	{Code: "MH", Name: "Hallmark"},
	{Code: "M1", Name: "Positional"},
	{Code: "M2", Name: "Curated", Children: []overlapCollection{
		{Code: "CGP", Name: "Chemical and Genetic Perturbations"},
		{Code: "CP", Name: "Canonical Pathways", Children: []overlapCollection{
			{Code: "CP:BIOCARTA", Name: "BioCarta Pathways"},
			{Code: "CP:REACTOME", Name: "Reactome Pathways"},
			{Code: "CP:WIKIPATHWAYS", Name: "WikiPathways"},
		}},
	}},
	{Code: "M3", Name: "Regulatory Target", Children: []overlapCollection{
		{Code: "GTRD", Name: "GTRD"},
		{Code: "MIRDB", Name: "miRDB"},
	}},
	{Code: "M5", Name: "Ontology", Children: []overlapCollection{
		{Code: "GO", Name: "Gene Ontology", Children: []overlapCollection{
			{Code: "GO:BP", Name: "GO Biological Process"},
			{Code: "GO:CC", Name: "GO Cellular Component"},
			{Code: "GO:MF", Name: "GO Molecular Function"},
		}},
		{Code: "MPT", Name: "MP Tumor"},
	}},
	{Code: "M7", Name: "Immunologic Signature"},
	{Code: "M8", Name: "Cell Type Signature"},
}

var humanOverlaps = []overlapCollection{
	{Code: "H", Name: "Hallmark"},
	{Code: "C1", Name: "Positional"},
	{Code: "C2", Name: "Curated", Children: []overlapCollection{
		{Code: "CGP", Name: "Chemical and Genetic Perturbations"},
		{Code: "CP", Name: "Canonical Pathways", Children: []overlapCollection{
			{Code: "CP:BIOCARTA", Name: "BioCarta Pathways"},
			{Code: "CP:KEGG", Name: "KEGG Pathways"},
			{Code: "CP:PID", Name: "PID Pathways"},
			{Code: "CP:REACTOME", Name: "Reactome Pathways"},
			{Code: "CP:WIKIPATHWAYS", Name: "WikiPathways"},
		}},
	}},
	{Code: "C3", Name: "Regulatory Target", Children: []overlapCollection{
		{Code: "MIR", Name: "microRNA Targets"},
		{Code: "TFT", Name: "Transcription Factor Targets"},
	}},
	{Code: "C4", Name: "Computational"},
	{Code: "C5", Name: "Ontology", Children: []overlapCollection{
		{Code: "GO", Name: "Gene Ontology", Children: []overlapCollection{
			{Code: "GO:BP", Name: "GO Biological Process"},
			{Code: "GO:CC", Name: "GO Cellular Component"},
			{Code: "GO:MF", Name: "GO Molecular Function"},
		}},
		{Code: "HPO", Name: "Human Phenotype Ontology"},
	}},
	{Code: "C6", Name: "Oncogenic Signature"},
	{Code: "C7", Name: "Immunologic Signature"},
	{Code: "C8", Name: "Cell Type Signature"},
}

type compendium struct {
	ID    string
	Title string
}

var downloadFormats = []string{"grp", "gmt", "xml", "json", "TSV"}

// page is the data the detail template runs against.
type page struct {
	GeneSet         models.GeneSet
	Species         string
	SpeciesTitle    string
	OtherSpecies    string
	Overlaps        []overlapCollection
	Compendium      compendium
	DownloadFormats []string
}

func newPage(g models.GeneSet, species string) page {
	p := page{
		GeneSet:         g,
		Species:         species,
		SpeciesTitle:    "Human",
		OtherSpecies:    SpeciesMouse,
		Overlaps:        humanOverlaps,
		Compendium:      compendium{ID: "humanTranscriptomicBodyMap", Title: "Human Transcriptomic BodyMap compendium"},
		DownloadFormats: downloadFormats,
	}
	if species == SpeciesMouse {
		p.SpeciesTitle = "Mouse"
		p.OtherSpecies = SpeciesHuman
		p.Overlaps = mouseOverlaps
		p.Compendium = compendium{ID: "mouseTranscriptomicBodyMap", Title: "Mouse Transcriptomic BodyMap compendium"}
	}
	return p
}
