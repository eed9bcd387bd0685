package dto

type DivisionEmployeeCountDTO struct {
	Division      string `json:"division"`
	NoOfEmployees int64  `json:"noOfEmployees"`
}

type FunctionGenderStatsDTO struct {
	Function    string `json:"function"`
	NoOfMales   int64  `json:"noOfMales"`
	NoOfFemales int64  `json:"noOfFemales"`
}
