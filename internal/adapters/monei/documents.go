package monei

// chargeSelection is the full field set requested for every charge read.
// The list and single-charge queries share it so both feed the same
// payload mapper.
const chargeSelection = `
    id
    accountId
    providerId
    checkoutId
    providerInternalId
    providerReferenceId
    createdAt
    updatedAt
    amount
    authorizationCode
    billingDetails {
        email
        name
        company
        phone
        address {
            city
            country
            line1
            line2
            zip
            state
        }
        taxId
    }
    billingPlan
    currency
    customer {
        email
        name
        phone
    }
    description
    descriptor
    livemode
    orderId
    storeId
    pointOfSaleId
    terminalId
    sequenceId
    subscriptionId
    paymentMethod {
        method
        card {
            brand
            country
            type
            threeDSecure
            threeDSecureVersion
            threeDSecureFlow
            last4
            cardholderName
            cardholderEmail
            expiration
            bank
            tokenizationMethod
        }
        cardPresent {
            brand
            country
            type
            bin
            last4
            cardholderName
            cardholderEmail
            expiration
        }
        bizum {
            phoneNumber
            integrationType
        }
        paypal {
            orderId
            payerId
            email
            name
        }
        cofidis {
            orderId
        }
        cofidisLoan {
            orderId
        }
        trustly {
            customerId
        }
        sepa {
            accountholderAddress {
                city
                country
                line1
                line2
                zip
                state
            }
            accountholderEmail
            accountholderName
            countryCode
            bankAddress
            bankCode
            bankName
            bic
            last4
        }
        klarna {
            billingCategory
            authPaymentMethod
        }
        mbway {
            phoneNumber
        }
    }
    cancellationReason
    lastRefundAmount
    lastRefundReason
    refundedAmount
    shippingDetails {
        email
        name
        company
        phone
        address {
            city
            country
            line1
            line2
            zip
            state
        }
        taxId
    }
    shop {
        name
        country
    }
    status
    statusCode
    statusMessage
    sessionDetails {
        ip
        userAgent
        countryCode
        lang
        deviceType
        deviceModel
        browser
        browserVersion
        browserAccept
        browserColorDepth
        browserScreenHeight
        browserScreenWidth
        browserTimezoneOffset
        os
        osVersion
        source
        sourceVersion
    }
    traceDetails {
        ip
        userAgent
        countryCode
        lang
        deviceType
        deviceModel
        browser
        browserVersion
        browserAccept
        os
        osVersion
        source
        sourceVersion
        userId
        userEmail
        userName
    }
    pageOpenedAt
    metadata {
        key
        value
    }
`

const chargesQuery = `
query Charges($size: Int, $from: Int, $filter: ChargesFilterInput) {
    charges(size: $size, from: $from, filter: $filter) {
        items {` + chargeSelection + `}
        total
    }
}
`

const chargeQuery = `
query Charge($id: ID!) {
    charge(id: $id) {` + chargeSelection + `}
}
`

const accountQuery = `
query Account {
    account {
        apiKey
    }
}
`

const storesQuery = `
query Stores {
    stores {
        items {
            id
            name
        }
    }
}
`

const paymentMethodsQuery = `
query AvailablePaymentMethods {
    availablePaymentMethods {
        paymentMethod
        configured
        enabled
    }
}
`

const cancelPaymentMutation = `
mutation CancelPayment($input: CancelPaymentInput!) {
    cancelPayment(input: $input) {
        id
        status
        statusCode
        statusMessage
        cancellationReason
        updatedAt
    }
}
`

const refundPaymentMutation = `
mutation RefundPayment($input: RefundPaymentInput!) {
    refundPayment(input: $input) {
        id
        status
        statusCode
        statusMessage
        refundedAmount
        lastRefundAmount
        lastRefundReason
        updatedAt
    }
}
`

const capturePaymentMutation = `
mutation CapturePayment($input: CapturePaymentInput!) {
    capturePayment(input: $input) {
        id
        status
        statusCode
        statusMessage
        amount
        updatedAt
    }
}
`

const createPaymentMutation = `
mutation CreatePayment($input: CreatePaymentInput!) {
    createPayment(input: $input) {
        id
        status
        statusCode
        statusMessage
        amount
        currency
        orderId
        description
        customer {
            name
            email
            phone
        }
        updatedAt
    }
}
`

const sendPaymentLinkMutation = `
mutation SendPaymentLink($input: SendPaymentMessageInput!) {
    sendPaymentLink(input: $input) {
        id
    }
}
`
