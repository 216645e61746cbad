package models

// Icon is a closed set of symbolic tags resolved to artwork at the
// presentation boundary. Unknown values fall back to IconDefault.
type Icon string

const (
	IconFood          Icon = "food"
	IconTransport     Icon = "transport"
	IconHousing       Icon = "housing"
	IconUtilities     Icon = "utilities"
	IconShopping      Icon = "shopping"
	IconEntertainment Icon = "entertainment"
	IconHealth        Icon = "health"
	IconEducation     Icon = "education"
	IconInvestment    Icon = "investment"
	IconGift          Icon = "gift"
	IconSalary        Icon = "salary"
	IconBonus         Icon = "bonus"
	IconDefault       Icon = "default"
)

var knownIcons = map[Icon]struct{}{
	IconFood: {}, IconTransport: {}, IconHousing: {}, IconUtilities: {},
	IconShopping: {}, IconEntertainment: {}, IconHealth: {}, IconEducation: {},
	IconInvestment: {}, IconGift: {}, IconSalary: {}, IconBonus: {}, IconDefault: {},
}

// ParseIcon maps an arbitrary tag onto the closed icon set.
func ParseIcon(s string) Icon {
	if _, ok := knownIcons[Icon(s)]; ok {
		return Icon(s)
	}
	return IconDefault
}

type Category struct {
	Name string `json:"name"`
	Icon Icon   `json:"icon"`
}

// ProtectedCategoryName cannot be deleted from either category set.
const ProtectedCategoryName = "Khác"

// DefaultExpenseCategories returns the seeded expense category list.
func DefaultExpenseCategories() []Category {
	return []Category{
		{Name: "Ăn uống", Icon: IconFood},
		{Name: "Di chuyển", Icon: IconTransport},
		{Name: "Nhà ở", Icon: IconHousing},
		{Name: "Tiện ích", Icon: IconUtilities},
		{Name: "Hóa đơn & Dịch vụ", Icon: IconDefault},
		{Name: "Mua sắm", Icon: IconShopping},
		{Name: "Giải trí", Icon: IconEntertainment},
		{Name: "Sức khỏe", Icon: IconHealth},
		{Name: "Giáo dục", Icon: IconEducation},
		{Name: "Gia đình & Con cái", Icon: IconDefault},
		{Name: "Đầu tư & Tiết kiệm", Icon: IconInvestment},
		{Name: "Du lịch", Icon: IconDefault},
		{Name: "Quà tặng & Từ thiện", Icon: IconGift},
		{Name: "Khác", Icon: IconDefault},
	}
}

// DefaultIncomeCategories returns the seeded income category list.
func DefaultIncomeCategories() []Category {
	return []Category{
		{Name: "Lương", Icon: IconSalary},
		{Name: "Thưởng", Icon: IconBonus},
		{Name: "Kinh doanh", Icon: IconDefault},
		{Name: "Đầu tư", Icon: IconInvestment},
		{Name: "Làm thêm", Icon: IconDefault},
		{Name: "Quà tặng", Icon: IconGift},
		{Name: "Khác", Icon: IconDefault},
	}
}
