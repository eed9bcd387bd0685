package dto

type ImportRowErrorDTO struct {
	Row    int    `json:"row"`
	EmpNo  string `json:"empNo,omitempty"`
	Reason string `json:"reason"`
}

type ImportResultDTO struct {
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Skipped  int                 `json:"skipped"`
	Errors   []ImportRowErrorDTO `json:"errors"`
}
