package departments

import "github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"

// Default returns the built-in department set used when no departments
// file is configured.
func Default() []models.Department {
	return []models.Department{
		{
			ID:         "vehicles",
			NameAr:     "قسم المركبات",
			NameEn:     "Vehicles Section",
			Prefix:     "V",
			RoomNameAr: "مكتب المركبات",
			RoomNameEn: "Vehicles Office",
		},
		{
			ID:         "finance",
			NameAr:     "قسم المالية - المدير المالي",
			NameEn:     "Finance Section - Finance Manager",
			Prefix:     "F",
			RoomNameAr: "مكتب المدير المالي",
			RoomNameEn: "Financial Manager Office",
		},
		{
			ID:         "supervisors",
			NameAr:     "قسم المشرفين",
			NameEn:     "Supervisors Section",
			Prefix:     "S",
			RoomNameAr: "مكتب المشرفين",
			RoomNameEn: "Supervisors Office",
		},
		{
			ID:         "ninja_supervisor",
			NameAr:     "مشرف نينجا",
			NameEn:     "Ninja Supervisor",
			Prefix:     "NS",
			RoomNameAr: "مكتب مشرف نينجا",
			RoomNameEn: "Ninja Supervisor Office",
		},
		{
			ID:         "kmart_bikes",
			NameAr:     "مشرف كيمارت ودبابات نينجا",
			NameEn:     "K-Mart & Ninja Bikes Supervisor",
			Prefix:     "K",
			RoomNameAr: "مكتب مشرف الكيمارت",
			RoomNameEn: "K-Mart Supervisor Office",
		},
		{
			ID:         "hr",
			NameAr:     "مدير الموارد البشرية",
			NameEn:     "HR Manager",
			Prefix:     "HR",
			RoomNameAr: "مكتب الموارد البشرية",
			RoomNameEn: "HR Manager Office",
		},
		{
			ID:         "petroleum",
			NameAr:     "قسم البترول",
			NameEn:     "Petroleum Section",
			Prefix:     "P",
			RoomNameAr: "مكتب البترول",
			RoomNameEn: "Petroleum Office",
		},
		{
			ID:         "ops_naqel",
			NameAr:     "مدير مشروع ناقل",
			NameEn:     "Naqel Project Manager",
			Prefix:     "ON",
			RoomNameAr: "مكتب مشروع ناقل",
			RoomNameEn: "Naqel Project Office",
		},
		{
			ID:         "ops_ninja",
			NameAr:     "مدير مشروع نينجا",
			NameEn:     "Ninja Project Manager",
			Prefix:     "OP",
			RoomNameAr: "مكتب مشروع نينجا",
			RoomNameEn: "Ninja Project Office",
		},
	}
}
