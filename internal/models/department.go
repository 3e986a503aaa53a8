package models

// Department is a configured service category with its own ticket
// number sequence. The set of departments is fixed for the lifetime
// of the process.
type Department struct {
	ID         string `json:"id" yaml:"id"`
	NameAr     string `json:"name_ar" yaml:"name_ar"`
	NameEn     string `json:"name_en" yaml:"name_en"`
	Prefix     string `json:"prefix" yaml:"prefix"`
	RoomNameAr string `json:"room_name_ar" yaml:"room_name_ar"`
	RoomNameEn string `json:"room_name_en" yaml:"room_name_en"`
}
