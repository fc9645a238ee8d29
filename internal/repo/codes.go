package repo

// UserCode: результат операций над пользователями.
type UserCode int

const (
	UserUnexpected       UserCode = -1 // вместе с ненулевой ошибкой
	UserSucceed          UserCode = 0
	UserIDNotMatched     UserCode = 1
	UserNameNotMatched   UserCode = 2
	UserNameAlreadyExist UserCode = 3
	UserNotExist         UserCode = 4
)

func (c UserCode) String() string {
	switch c {
	case UserSucceed:
		return "SUCCEED"
	case UserIDNotMatched:
		return "ID_NOT_MATCHED"
	case UserNameNotMatched:
		return "NAME_NOT_MATCHED"
	case UserNameAlreadyExist:
		return "NAME_ALREADY_EXIST"
	case UserNotExist:
		return "USER_NOT_EXIST"
	default:
		return "UNEXPECTED"
	}
}

// ItemCode: результат операций над кампаниями.
type ItemCode int

const (
	ItemUnexpected                ItemCode = -1 // вместе с ненулевой ошибкой
	ItemSucceed                   ItemCode = 0
	ItemUserIDNotMatched          ItemCode = 1
	ItemIDNotMatched              ItemCode = 2
	ItemNameNotMatched            ItemCode = 3
	ItemEndDateNotMatched         ItemCode = 4
	ItemTargetMoneyNotMatched     ItemCode = 5
	ItemFundingUnitNotMatched     ItemCode = 6
	ItemUserNotExists             ItemCode = 7
	ItemSummaryNotMatched         ItemCode = 8
	ItemParticipantSizeNotMatched ItemCode = 9
	ItemAlreadyExists             ItemCode = 10
	ItemCurrentMoneyNotMatched    ItemCode = 11
	ItemNotExists                 ItemCode = 12
)

func (c ItemCode) String() string {
	switch c {
	case ItemSucceed:
		return "SUCCEED"
	case ItemUserIDNotMatched:
		return "USER_ID_NOT_MATCHED"
	case ItemIDNotMatched:
		return "ITEM_ID_NOT_MATCHED"
	case ItemNameNotMatched:
		return "NAME_NOT_MATCHED"
	case ItemEndDateNotMatched:
		return "END_DATE_NOT_MATCHED"
	case ItemTargetMoneyNotMatched:
		return "TARGET_MONEY_NOT_MATCHED"
	case ItemFundingUnitNotMatched:
		return "FUNDING_UNIT_NOT_MATCHED"
	case ItemUserNotExists:
		return "USER_NOT_EXISTS"
	case ItemSummaryNotMatched:
		return "SUMMARY_NOT_MATCHED"
	case ItemParticipantSizeNotMatched:
		return "PARTICIPANT_SIZE_NOT_MATCHED"
	case ItemAlreadyExists:
		return "ITEM_ALREADY_EXISTS"
	case ItemCurrentMoneyNotMatched:
		return "CURRENT_MONEY_NOT_MATCHED"
	case ItemNotExists:
		return "ITEM_NOT_EXISTS"
	default:
		return "UNEXPECTED"
	}
}

// userCodeFor переводит имя невалидного поля model.User в код.
func userCodeFor(field string) UserCode {
	switch field {
	case "":
		return UserSucceed
	case "ID":
		return UserIDNotMatched
	default:
		return UserNameNotMatched
	}
}

// itemCodeFor переводит имя невалидного поля model.Item / model.ItemContents в код.
func itemCodeFor(field string) ItemCode {
	switch field {
	case "":
		return ItemSucceed
	case "ItemID":
		return ItemIDNotMatched
	case "UserID":
		return ItemUserIDNotMatched
	case "Name":
		return ItemNameNotMatched
	case "EndDate":
		return ItemEndDateNotMatched
	case "TargetMoney":
		return ItemTargetMoneyNotMatched
	case "FundingUnit":
		return ItemFundingUnitNotMatched
	case "ParticipantSize":
		return ItemParticipantSizeNotMatched
	case "CurrentMoney":
		return ItemCurrentMoneyNotMatched
	case "Summary":
		return ItemSummaryNotMatched
	default:
		return ItemUnexpected
	}
}
