package dto

// Upload carries one uploaded file across the controller/usecase boundary.
type Upload struct {
	Data []byte
	Mime string
}

// VariantBuffers is the deriver's output: one encoded buffer per size label.
type VariantBuffers struct {
	Small  []byte
	Medium []byte
	Large  []byte
}
